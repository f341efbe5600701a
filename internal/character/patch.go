package character

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/osse101/armory/internal/domain"
)

// patchView is the client-editable part of a record
type patchView struct {
	Avatar string   `json:"avatar"`
	Skills []string `json:"skills"`
	HP     int      `json:"hp"`
	Shield int      `json:"shield"`
}

// Patch applies an RFC 7396 merge patch limited to avatar, skills, hp and shield.
// hp is bounded by maxHp and shield by maxShield.
func (s *service) Patch(ctx context.Context, name string, mergePatch []byte) (*domain.Character, error) {
	if err := checkPatchFields(mergePatch); err != nil {
		return nil, err
	}

	return s.mutate(ctx, name, func(c *domain.Character) error {
		current, err := json.Marshal(patchView{Avatar: c.Avatar, Skills: c.Skills, HP: c.HP, Shield: c.Shield})
		if err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}

		merged, err := jsonpatch.MergePatch(current, mergePatch)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidPatch, err)
		}

		var view patchView
		dec := json.NewDecoder(bytes.NewReader(merged))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&view); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidPatch, err)
		}
		if err := validateView(&view, c); err != nil {
			return err
		}

		c.Avatar = view.Avatar
		c.Skills = view.Skills
		c.HP = view.HP
		c.Shield = view.Shield
		return nil
	})
}

// checkPatchFields rejects patches touching anything but the editable fields.
// hp and shield cannot be removed with null.
func checkPatchFields(mergePatch []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(mergePatch, &fields); err != nil || fields == nil {
		return fmt.Errorf("%w: patch must be a JSON object", domain.ErrInvalidPatch)
	}

	for key, raw := range fields {
		switch key {
		case FieldAvatar, FieldSkills:
		case FieldHP, FieldShield:
			if string(bytes.TrimSpace(raw)) == "null" {
				return fmt.Errorf("%w: %s cannot be null", domain.ErrInvalidPatch, key)
			}
		default:
			return fmt.Errorf("%w: field %q is not editable", domain.ErrInvalidPatch, key)
		}
	}
	return nil
}

func validateView(v *patchView, c *domain.Character) error {
	if v.Skills == nil {
		v.Skills = []string{}
	}
	if len(v.Skills) > MaxSkills {
		return fmt.Errorf("%w: at most %d skills", domain.ErrInvalidPatch, MaxSkills)
	}
	for i, skill := range v.Skills {
		skill = strings.TrimSpace(skill)
		if skill == "" || utf8.RuneCountInString(skill) > MaxSkillLength {
			return fmt.Errorf("%w: skill %d must be 1-%d characters", domain.ErrInvalidPatch, i, MaxSkillLength)
		}
		v.Skills[i] = skill
	}

	if len(v.Avatar) > MaxAvatarLength {
		return fmt.Errorf("%w: avatar longer than %d bytes", domain.ErrInvalidPatch, MaxAvatarLength)
	}
	if v.HP < 0 || v.HP > c.MaxHP {
		return fmt.Errorf("%w: hp must be between 0 and %d", domain.ErrInvalidPatch, c.MaxHP)
	}
	if v.Shield < 0 || v.Shield > c.MaxShield {
		return fmt.Errorf("%w: shield must be between 0 and %d", domain.ErrInvalidPatch, c.MaxShield)
	}
	return nil
}
