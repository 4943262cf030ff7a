package services

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/font"

	types "github.com/soundfield/attune-backend/internal/domain"
	"github.com/soundfield/attune-backend/internal/platform/localmedia"
	"github.com/soundfield/attune-backend/internal/platform/logger"
)

type AvatarService interface {
	CreateUserAvatar(ctx context.Context, user *types.User) error
	GenerateUserAvatar(user *types.User) (bytes.Buffer, error)
}

type avatarService struct {
	log      *logger.Logger
	media    localmedia.Store
	palette  []color.NRGBA
	fontFace font.Face
}

// notePalette colors avatars with the six note hues.
var notePalette = []color.NRGBA{
	{R: 0x4C, G: 0x6E, B: 0x58, A: 0xFF}, // safety
	{R: 0xC4, G: 0x6B, B: 0x8E, A: 0xFF}, // pleasure
	{R: 0x8E, G: 0x44, B: 0x5A, A: 0xFF}, // power
	{R: 0xD9, G: 0xA4, B: 0x41, A: 0xFF}, // light
	{R: 0x3F, G: 0x6B, B: 0x8A, A: 0xFF}, // now
	{R: 0xC2, G: 0x5B, B: 0x3A, A: 0xFF}, // heat
}

// NewAvatarService loads the TTF named by AVATAR_FONT. A missing font is
// not fatal; avatars are skipped and accounts still work.
func NewAvatarService(log *logger.Logger, media localmedia.Store) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	var face font.Face
	fontPath := strings.TrimSpace(os.Getenv("AVATAR_FONT"))
	if fontPath != "" {
		var err error
		face, err = loadFontFace(fontPath, 206)
		if err != nil {
			return nil, fmt.Errorf("could not load avatar font: %w", err)
		}
		serviceLog.Info("Loaded avatar font", "font", fontPath)
	} else {
		serviceLog.Warn("AVATAR_FONT not set, initials avatars disabled")
	}

	return &avatarService{
		log:      serviceLog,
		media:    media,
		palette:  notePalette,
		fontFace: face,
	}, nil
}

// CreateUserAvatar renders an initials avatar and stores it, pointing the
// user at the new object. The old object is removed afterwards on a best
// effort basis.
func (as *avatarService) CreateUserAvatar(ctx context.Context, user *types.User) error {
	if user == nil || user.ID == uuid.Nil {
		return fmt.Errorf("user required")
	}
	if as.fontFace == nil {
		return fmt.Errorf("avatar font not configured")
	}

	buf, err := as.GenerateUserAvatar(user)
	if err != nil {
		return err
	}

	oldKey := strings.TrimSpace(user.AvatarMediaKey)

	// Versioned key so browsers never serve a stale cached avatar.
	newKey := fmt.Sprintf("user_avatar/%s/%d.png", user.ID.String(), time.Now().UnixNano())

	url, err := as.media.Save(ctx, newKey, buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to store user avatar: %w", err)
	}

	user.AvatarMediaKey = newKey
	user.AvatarURL = url

	if oldKey != "" && oldKey != newKey {
		if err := as.media.Delete(ctx, oldKey); err != nil {
			as.log.Warn("failed to delete old avatar (ignored)", "oldKey", oldKey, "error", err)
		}
	}

	return nil
}

func (as *avatarService) GenerateUserAvatar(user *types.User) (bytes.Buffer, error) {
	const size = 512

	dc := gg.NewContext(size, size)

	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	dc.SetColor(as.pickColor(user.ID))
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	initials := computeInitials(user.FirstName, user.LastName)

	dc.SetFontFace(as.fontFace)
	tw, th := dc.MeasureString(initials)
	cx, cy := float64(size)/2, float64(size)/2

	dc.SetColor(color.White)
	dc.DrawString(initials, cx-(tw/2)+5, cy+(th/2)-10)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

// pickColor derives a stable palette entry from the user id so the same
// user always renders the same hue.
func (as *avatarService) pickColor(id uuid.UUID) color.NRGBA {
	var sum int
	for _, b := range id {
		sum += int(b)
	}
	return as.palette[sum%len(as.palette)]
}

func computeInitials(first, last string) string {
	fInit := "?"
	if len(first) > 0 {
		fInit = strings.ToUpper(first[:1])
	}
	lInit := "?"
	if len(last) > 0 {
		lInit = strings.ToUpper(last[:1])
	}
	return fInit + lInit
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	face := truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	return face, nil
}
