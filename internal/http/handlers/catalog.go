package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/soundfield/attune-backend/internal/catalog"
	types "github.com/soundfield/attune-backend/internal/domain"
	"github.com/soundfield/attune-backend/internal/http/response"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// GET /catalog/questions
func (ch *CatalogHandler) ListQuestions(c *gin.Context) {
	response.RespondOK(c, gin.H{"questions": ch.catalog.Questions()})
}

// GET /catalog/notes
func (ch *CatalogHandler) ListNotes(c *gin.Context) {
	notes := make([]gin.H, 0, len(types.NoteInfos))
	for _, info := range types.NoteInfos {
		notes = append(notes, gin.H{
			"id":         info.ID,
			"name":       info.Name,
			"triad":      info.Triad,
			"essence":    info.Essence,
			"color":      info.Color,
			"invitation": catalog.NoteInvitation(info.ID),
		})
	}
	response.RespondOK(c, gin.H{"notes": notes})
}

// GET /catalog/domains
func (ch *CatalogHandler) ListDomains(c *gin.Context) {
	response.RespondOK(c, gin.H{"domains": types.DomainInfos})
}
