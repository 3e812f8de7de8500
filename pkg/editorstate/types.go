package editorstate

// ContentState is the raw content the search box editor is seeded with.
// Only single-block states are produced, but the shape follows the editor's
// raw format so a state can round-trip through the client unchanged.
type ContentState struct {
	Blocks    []Block        `json:"blocks"`
	EntityMap map[int]Entity `json:"entityMap"`
}

// Block is one paragraph of editor text
type Block struct {
	Key               string             `json:"key"`
	Text              string             `json:"text"`
	Type              string             `json:"type"`
	Depth             int                `json:"depth"`
	InlineStyleRanges []InlineStyleRange `json:"inlineStyleRanges"`
	EntityRanges      []EntityRange      `json:"entityRanges"`
	Data              map[string]any     `json:"data"`
}

// EntityRange marks the span of a block that an entity covers.
// Offset and Length are counted in UTF-16 code units.
type EntityRange struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
	Key    int `json:"key"`
}

type InlineStyleRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Style  string `json:"style"`
}

// Entity is an annotation attached to a range of text
type Entity struct {
	Type       string     `json:"type"`
	Mutability Mutability `json:"mutability"`
	Data       EntityData `json:"data"`
}

type EntityData struct {
	Mention *Mention `json:"mention,omitempty"`
}

// Mention is the payload of a topic mention entity
type Mention struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

type Mutability string

const (
	// MutabilityImmutable spans can only be removed as a whole
	MutabilityImmutable Mutability = "IMMUTABLE"
	MutabilityMutable   Mutability = "MUTABLE"
	MutabilitySegmented Mutability = "SEGMENTED"
)

const (
	BlockTypeUnstyled = "unstyled"
	EntityTypeMention = "in:mention"
)

// NewBlock returns an unstyled block with empty range slices, so it encodes
// as `[]` rather than `null`.
func NewBlock(key, text string) Block {
	return Block{
		Key:               key,
		Text:              text,
		Type:              BlockTypeUnstyled,
		InlineStyleRanges: []InlineStyleRange{},
		EntityRanges:      []EntityRange{},
		Data:              map[string]any{},
	}
}

// KeyGenerator yields opaque block keys
type KeyGenerator func() string
