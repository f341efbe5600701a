package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/osse101/armory/internal/character"
	"github.com/osse101/armory/internal/domain"
	"github.com/osse101/armory/internal/logger"
	"github.com/osse101/armory/internal/scanner"
	"github.com/osse101/armory/internal/share"
)

// ReceiveRequest carries a compact payload typed or pasted by the user
type ReceiveRequest struct {
	Payload string `json:"payload" validate:"required,max=256,printascii"`
}

// PayloadValidator checks a compact payload before it is rendered
type PayloadValidator interface {
	Validate(payload string) error
}

// ShareConfig holds the sharing endpoint limits
type ShareConfig struct {
	QRSize         int
	MaxUploadBytes int64
}

// ShareHandlers serves weapon sharing: encode, receive by text, image or live scan
type ShareHandlers struct {
	svc      character.Service
	payloads PayloadValidator
	scans    *scanner.Manager
	upgrader websocket.Upgrader
	cfg      ShareConfig
}

// NewShareHandlers creates the sharing endpoint handlers
func NewShareHandlers(svc character.Service, payloads PayloadValidator, scans *scanner.Manager, cfg ShareConfig) *ShareHandlers {
	return &ShareHandlers{
		svc:      svc,
		payloads: payloads,
		scans:    scans,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  scanner.ReadBufferSize,
			WriteBufferSize: 1024,
		},
		cfg: cfg,
	}
}

// HandleShareLoot encodes the pending loot and clears the slot
// @Summary Share loot
// @Description Encodes the pending loot as a compact payload and QR code (base64 PNG). The slot is cleared on success.
// @Tags sharing
// @Produce json
// @Param name path string true "Character name"
// @Success 200 {object} character.ShareResult
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/characters/{name}/loot/share [post]
func (h *ShareHandlers) HandleShareLoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := h.svc.ShareLoot(r.Context(), characterName(r))
		if err != nil {
			respondServiceError(w, r, "Share loot", err)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}

// HandleShareWeapon encodes an inventory weapon and removes it
// @Summary Share weapon
// @Description Encodes the weapon as a compact payload and QR code. The weapon leaves the inventory only when encoding succeeds.
// @Tags sharing
// @Produce json
// @Param name path string true "Character name"
// @Param id path string true "Weapon id"
// @Success 200 {object} character.ShareResult
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/characters/{name}/weapons/{id}/share [post]
func (h *ShareHandlers) HandleShareWeapon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := h.svc.ShareWeapon(r.Context(), characterName(r), weaponID(r))
		if err != nil {
			respondServiceError(w, r, "Share weapon", err)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}

// HandleReceive decodes a pasted payload into the loot slot
// @Summary Receive payload
// @Tags sharing
// @Accept json
// @Produce json
// @Param name path string true "Character name"
// @Param request body ReceiveRequest true "Compact payload"
// @Success 200 {object} domain.Weapon
// @Failure 422 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /api/v1/characters/{name}/receive [post]
func (h *ShareHandlers) HandleReceive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ReceiveRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Receive weapon"); err != nil {
			return
		}

		weapon, err := h.svc.ReceiveShared(r.Context(), characterName(r), req.Payload)
		if err != nil {
			respondReceiveError(w, r, "Receive weapon", err)
			return
		}
		respondJSON(w, http.StatusOK, weapon)
	}
}

// HandleReceiveImage decodes an uploaded QR image into the loot slot
// @Summary Receive QR image
// @Description Accepts a multipart "image" field or a raw PNG, JPEG or GIF body.
// @Tags sharing
// @Accept multipart/form-data
// @Accept image/png
// @Produce json
// @Param name path string true "Character name"
// @Success 200 {object} domain.Weapon
// @Failure 413 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/characters/{name}/receive/image [post]
func (h *ShareHandlers) HandleReceiveImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.cfg.MaxUploadBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
		}

		data, err := h.readImage(r)
		if err != nil {
			logger.FromContext(r.Context()).Warn(LogMsgImageUploadInvalid, "error", err)
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondError(w, http.StatusRequestEntityTooLarge, ErrMsgRequestTooLarge)
				return
			}
			respondError(w, http.StatusBadRequest, ErrMsgMissingImage)
			return
		}

		weapon, err := h.svc.ReceiveImage(r.Context(), characterName(r), data)
		if err != nil {
			respondReceiveError(w, r, "Receive image", err)
			return
		}
		respondJSON(w, http.StatusOK, weapon)
	}
}

func (h *ShareHandlers) readImage(r *http.Request) ([]byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if !strings.HasPrefix(mediaType, "multipart/") {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			return nil, fmt.Errorf("empty image body")
		}
		return data, nil
	}

	file, _, err := r.FormFile(ImageFormField)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// HandleScan upgrades to a WebSocket and runs a live camera scan.
// The client sends image frames as binary messages and "stop" to cancel;
// the server answers each frame with a JSON status.
// @Summary Live QR scan
// @Tags sharing
// @Param name path string true "Character name"
// @Success 101
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /api/v1/characters/{name}/scan [get]
func (h *ShareHandlers) HandleScan() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := h.svc.Get(r.Context(), characterName(r))
		if err != nil {
			respondServiceError(w, r, "Start scan", err)
			return
		}
		owner := c.Name

		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already written the error response
			logger.FromContext(r.Context()).Warn(LogMsgScanUpgradeFailed, "owner", owner, "error", err)
			return
		}

		accept := func(ctx context.Context, weapon *domain.Weapon) error {
			return h.svc.AcceptScanned(ctx, owner, weapon)
		}
		if err := scanner.ServeWebSocket(r.Context(), h.scans, owner, conn, accept); err != nil {
			logger.FromContext(r.Context()).Warn(LogMsgScanSessionEnded, "owner", owner, "error", err)
		}
	}
}

// HandleRenderQR renders a compact payload as a PNG
// @Summary Render QR code
// @Tags sharing
// @Produce png
// @Param payload query string true "Compact payload"
// @Param size query int false "Image size in pixels"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/share/qr [get]
func (h *ShareHandlers) HandleRenderQR() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := GetQueryParam(r, w, "payload")
		if !ok {
			return
		}
		size, ok := GetOptionalIntQueryParam(r, w, "size", h.cfg.QRSize)
		if !ok {
			return
		}

		if len(payload) > MaxPayloadLength {
			respondReceiveError(w, r, "Render QR", domain.ErrMalformedPayload)
			return
		}
		if err := h.payloads.Validate(payload); err != nil {
			respondReceiveError(w, r, "Render QR", err)
			return
		}

		png, err := share.RenderQR(payload, size)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgRenderQRFailed, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgRenderQRFailed)
			return
		}

		w.Header().Set("Content-Type", ContentTypePNG)
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}
