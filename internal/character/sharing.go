package character

import (
	"context"
	"errors"
	"slices"

	"github.com/osse101/armory/internal/domain"
	"github.com/osse101/armory/internal/logger"
	"github.com/osse101/armory/internal/share"
)

// encode builds the payload and QR code for w without touching any state
func (s *service) encode(ctx context.Context, name string, w *domain.Weapon) (*ShareResult, error) {
	log := logger.FromContext(ctx)

	payload, err := s.codec.Marshal(w)
	if err != nil {
		log.Warn(LogMsgShareFailed, "character", name, "weapon", w.Name, "reason", share.FailureReason(err), "error", err)
		return nil, err
	}

	png, err := share.RenderQR(payload, s.qrSize)
	if err != nil {
		log.Error(LogMsgFailedToRenderQR, "character", name, "error", err)
		return nil, err
	}

	shared := *w
	shared.IsShared = true
	shared.Equipped = false
	return &ShareResult{Payload: payload, QRCode: png, Weapon: &shared}, nil
}

// ShareLoot encodes the slot weapon and empties the slot. A failed encode keeps the weapon.
func (s *service) ShareLoot(ctx context.Context, name string) (*ShareResult, error) {
	var out *ShareResult
	err := s.locks.Do(name, func() error {
		if _, err := s.load(ctx, name); err != nil {
			return err
		}
		w, ok := s.slot(name)
		if !ok {
			return domain.ErrLootSlotEmpty
		}

		res, err := s.encode(ctx, name, w)
		if err != nil {
			return err
		}
		s.clearSlot(name)
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgWeaponShared, "character", name, "weapon", out.Weapon.Name, "source", "loot")
	return out, nil
}

// ShareWeapon encodes an inventory weapon and removes it only once encoding succeeded
func (s *service) ShareWeapon(ctx context.Context, name, weaponID string) (*ShareResult, error) {
	var out *ShareResult
	_, err := s.mutate(ctx, name, func(c *domain.Character) error {
		i, err := s.weaponIndex(c, weaponID)
		if err != nil {
			return err
		}

		res, err := s.encode(ctx, name, &c.Weapons[i])
		if err != nil {
			return err
		}
		c.Weapons = slices.Delete(c.Weapons, i, i+1)
		s.syncShield(c)
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgWeaponShared, "character", name, "weapon", out.Weapon.Name, "source", "inventory")
	return out, nil
}

// ReceiveShared decodes a payload into the loot slot. The weapon is marked
// received and can never be shared again.
func (s *service) ReceiveShared(ctx context.Context, name, payload string) (*domain.Weapon, error) {
	var out *domain.Weapon
	err := s.locks.Do(name, func() error {
		if _, err := s.load(ctx, name); err != nil {
			return err
		}

		w, err := s.codec.Decode(payload)
		if err != nil {
			return err
		}
		s.setSlot(name, w)
		out = w
		return nil
	})
	if err != nil {
		s.logReceiveFailure(ctx, name, err)
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgWeaponReceived, "character", name, "weapon", out.Name)
	return out, nil
}

// ReceiveImage finds a QR code in an uploaded image and receives its payload
func (s *service) ReceiveImage(ctx context.Context, name string, image []byte) (*domain.Weapon, error) {
	payload, err := share.ScanBytes(image)
	if err != nil {
		s.logReceiveFailure(ctx, name, err)
		return nil, err
	}
	return s.ReceiveShared(ctx, name, payload)
}

// AcceptScanned places a weapon decoded by a scan session into the loot slot
func (s *service) AcceptScanned(ctx context.Context, name string, w *domain.Weapon) error {
	if w == nil || !w.IsReceived {
		return domain.ErrMalformedPayload
	}
	err := s.locks.Do(name, func() error {
		return s.fillSlot(ctx, name, w)
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgWeaponReceived, "character", name, "weapon", w.Name, "source", "scan")
	return nil
}

func (s *service) logReceiveFailure(ctx context.Context, name string, err error) {
	if errors.Is(err, domain.ErrCharacterNotFound) {
		return
	}
	logger.FromContext(ctx).Warn(LogMsgReceiveFailed, "character", name, "reason", share.FailureReason(err), "error", err)
}
