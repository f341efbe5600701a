package share

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/armory/internal/catalog"
	"github.com/osse101/armory/internal/domain"
	"github.com/osse101/armory/internal/metrics"
)

// CompactArray is the positional wire form of a shared weapon:
// [version, typeCode, rarityCode, damage, accuracy, range, level, shieldPoints]
type CompactArray [payloadLength]int

// typeEntry is the decoded side of a type code
type typeEntry struct {
	className string
	typeName  string
}

// Codec converts weapons to and from compact arrays. Type codes run from 1
// over classes sorted by name, then types in catalog order. Rarity codes are
// rank+1. Code 0 is never assigned.
type Codec struct {
	catalog *catalog.Catalog

	types     []typeEntry    // index = code-1
	typeCodes map[string]int // canonical type name -> code

	now   func() time.Time
	newID func() (uuid.UUID, error)
}

// NewCodec builds the code tables for cat
func NewCodec(cat *catalog.Catalog) (*Codec, error) {
	if cat == nil {
		return nil, domain.ErrNotReady
	}

	c := &Codec{
		catalog:   cat,
		typeCodes: make(map[string]int),
		now:       time.Now,
		newID:     uuid.NewV7,
	}

	for _, typeName := range cat.TypeNames() {
		class, canonical, ok := cat.ClassOfType(typeName)
		if !ok {
			return nil, fmt.Errorf("%w: type %q has no class", domain.ErrInvalidCatalog, typeName)
		}
		c.types = append(c.types, typeEntry{className: class.Name, typeName: canonical})
		c.typeCodes[canonical] = len(c.types)
	}

	return c, nil
}

// TypeCode returns the compact code for a type name
func (c *Codec) TypeCode(typeName string) (int, bool) {
	_, canonical, ok := c.catalog.ClassOfType(typeName)
	if !ok {
		return 0, false
	}
	code, ok := c.typeCodes[canonical]
	return code, ok
}

// Encode converts w to its compact array. Received weapons are refused.
func (c *Codec) Encode(w *domain.Weapon) (CompactArray, error) {
	arr, err := c.encode(w)
	if err != nil {
		metrics.ShareFailures.WithLabelValues(FailureReason(err)).Inc()
		return CompactArray{}, err
	}
	metrics.SharesEncoded.Inc()
	return arr, nil
}

func (c *Codec) encode(w *domain.Weapon) (CompactArray, error) {
	if c == nil || c.catalog == nil {
		return CompactArray{}, domain.ErrNotReady
	}
	if w == nil {
		return CompactArray{}, fmt.Errorf("%w: no weapon", domain.ErrNotShareable)
	}
	if !w.Shareable() {
		return CompactArray{}, fmt.Errorf("%w: %s was received from another player", domain.ErrNotShareable, w.Name)
	}

	class, canonical, ok := c.catalog.ClassOfType(w.Type)
	if !ok {
		return CompactArray{}, unmappable(FieldType, w.Type, c.catalog.TypeNames())
	}
	// The class is implied by the type code, so a mismatch cannot travel
	if !strings.EqualFold(class.Name, w.WeaponClass) {
		return CompactArray{}, unmappable(FieldClass, w.WeaponClass, []string{class.Name})
	}

	_, rank, ok := c.catalog.RarityByName(w.Rarity)
	if !ok {
		return CompactArray{}, unmappable(FieldRarity, w.Rarity, rarityNames(c.catalog))
	}

	arr := CompactArray{
		idxVersion:      FormatVersion,
		idxType:         c.typeCodes[canonical],
		idxRarity:       rank + 1,
		idxDamage:       w.Damage,
		idxAccuracy:     w.Accuracy,
		idxRange:        w.Range,
		idxLevel:        w.Level,
		idxShieldPoints: w.ShieldPoints,
	}
	for i := idxDamage; i < payloadLength; i++ {
		if arr[i] < 0 {
			return CompactArray{}, unmappable(FieldStat, strconv.Itoa(arr[i]), nil)
		}
	}
	return arr, nil
}

// Marshal encodes w and serializes it as compact JSON text
func (c *Codec) Marshal(w *domain.Weapon) (string, error) {
	arr, err := c.Encode(w)
	if err != nil {
		return "", err
	}
	return arr.String(), nil
}

// String returns the JSON text of the array
func (a CompactArray) String() string {
	data, _ := json.Marshal(a) // [N]int always marshals
	return string(data)
}

// Decode reconstructs a weapon from a compact JSON payload. The result is
// marked received and can never be encoded again.
func (c *Codec) Decode(payload string) (*domain.Weapon, error) {
	w, err := c.decode(payload)
	if err != nil {
		metrics.ShareFailures.WithLabelValues(FailureReason(err)).Inc()
		return nil, err
	}
	metrics.SharesReceived.Inc()
	return w, nil
}

// Validate reports whether payload decodes, without counting it as received
func (c *Codec) Validate(payload string) error {
	_, err := c.decode(payload)
	return err
}

func (c *Codec) decode(payload string) (*domain.Weapon, error) {
	if c == nil || c.catalog == nil {
		return nil, domain.ErrNotReady
	}

	arr, err := parseCompact(payload)
	if err != nil {
		return nil, err
	}

	typeCode := arr[idxType]
	if typeCode < 1 || typeCode > len(c.types) {
		return nil, fmt.Errorf("%w: type code %d", domain.ErrUnmappableValue, typeCode)
	}
	entry := c.types[typeCode-1]

	rarity, ok := c.catalog.Rarity(arr[idxRarity] - 1)
	if !ok {
		return nil, fmt.Errorf("%w: rarity code %d", domain.ErrUnmappableValue, arr[idxRarity])
	}

	if err := checkRanges(arr, c.catalog.IsShieldClass(entry.className)); err != nil {
		return nil, err
	}

	id, err := c.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate weapon id: %w", err)
	}

	return &domain.Weapon{
		ID:           id.String(),
		Name:         domain.DisplayName(rarity.Name, entry.typeName),
		Type:         entry.typeName,
		WeaponClass:  entry.className,
		Rarity:       rarity.Name,
		Color:        rarity.Color,
		Level:        arr[idxLevel],
		Damage:       arr[idxDamage],
		Accuracy:     arr[idxAccuracy],
		Range:        arr[idxRange],
		ShieldPoints: arr[idxShieldPoints],
		IsReceived:   true,
		CreatedAt:    c.now().UTC(),
	}, nil
}

// parseCompact reads the JSON array, checking the version before the shape so
// a payload of another version is reported as such.
func parseCompact(payload string) (CompactArray, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(payload)), &raw); err != nil {
		return CompactArray{}, fmt.Errorf("%w: %w", domain.ErrMalformedPayload, err)
	}
	if len(raw) == 0 {
		return CompactArray{}, fmt.Errorf("%w: empty array", domain.ErrMalformedPayload)
	}

	version, err := parseUint(raw[idxVersion])
	if err != nil {
		return CompactArray{}, fmt.Errorf("%w: version: %w", domain.ErrMalformedPayload, err)
	}
	if version != FormatVersion {
		return CompactArray{}, fmt.Errorf("%w: got %d, want %d", domain.ErrUnsupportedVersion, version, FormatVersion)
	}

	if len(raw) != payloadLength {
		return CompactArray{}, fmt.Errorf("%w: expected %d elements, got %d", domain.ErrMalformedPayload, payloadLength, len(raw))
	}

	var arr CompactArray
	for i, elem := range raw {
		v, err := parseUint(elem)
		if err != nil {
			return CompactArray{}, fmt.Errorf("%w: element %d: %w", domain.ErrMalformedPayload, i, err)
		}
		arr[i] = v
	}
	return arr, nil
}

// parseUint accepts a bare non-negative JSON integer
func parseUint(raw json.RawMessage) (int, error) {
	text := string(bytes.TrimSpace(raw))
	v, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("not a non-negative integer: %s", text)
	}
	return int(v), nil
}

// checkRanges enforces the natural range of each stat
func checkRanges(arr CompactArray, isShield bool) error {
	switch {
	case arr[idxLevel] < 1:
		return fmt.Errorf("%w: level must be at least 1", domain.ErrMalformedPayload)
	case arr[idxRange] < 1:
		return fmt.Errorf("%w: range must be at least 1", domain.ErrMalformedPayload)
	case arr[idxAccuracy] > 100:
		return fmt.Errorf("%w: accuracy above 100", domain.ErrMalformedPayload)
	case isShield && arr[idxShieldPoints] == 0:
		return fmt.Errorf("%w: shield without shield points", domain.ErrMalformedPayload)
	case !isShield && arr[idxShieldPoints] != 0:
		return fmt.Errorf("%w: shield points on a non-shield weapon", domain.ErrMalformedPayload)
	}
	return nil
}

func rarityNames(cat *catalog.Catalog) []string {
	rarities := cat.Rarities()
	names := make([]string, len(rarities))
	for i, r := range rarities {
		names[i] = r.Name
	}
	return names
}
