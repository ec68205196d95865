package model

const (
	// MetadataVersion is the Lens publication metadata version produced
	MetadataVersion = "2.0.0"

	// MainContentFocusTextOnly is the focus for text comments
	MainContentFocusTextOnly = "TEXT_ONLY"

	// DisplayTypeString is the attribute display type used for all attributes
	DisplayTypeString = "string"
)

// MetadataAttribute is a single trait of a publication
type MetadataAttribute struct {
	DisplayType string `json:"displayType"`
	TraitType   string `json:"traitType"`
	Value       string `json:"value"`
}

// PublicationMetadata is the payload uploaded to the content store. It is
// not modified once built.
type PublicationMetadata struct {
	Version          string               `json:"version"`
	MetadataID       string               `json:"metadata_id"`
	Description      string               `json:"description"`
	Content          string               `json:"content"`
	Locale           string               `json:"locale"`
	MainContentFocus string               `json:"mainContentFocus"`
	ExternalURL      string               `json:"external_url"`
	Image            *string              `json:"image"`
	ImageMimeType    *string              `json:"imageMimeType"`
	Name             string               `json:"name"`
	Attributes       []*MetadataAttribute `json:"attributes"`
	Media            []interface{}        `json:"media"`
	AppID            string               `json:"appId"`
}

// Attribute returns the value of the attribute with the given trait type
func (m *PublicationMetadata) Attribute(traitType string) (string, bool) {
	for _, attr := range m.Attributes {
		if attr.TraitType == traitType {
			return attr.Value, true
		}
	}
	return "", false
}
