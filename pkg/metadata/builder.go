// Package metadata builds the Lens publication metadata uploaded for comments
// and tips.
package metadata // import "github.com/tapexyz/tape-publisher/pkg/metadata"

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/tapexyz/tape-publisher/pkg/model"
)

const (
	traitTypePublication = "publication"
	traitTypeApp         = "app"
	traitTypeType        = "type"
	traitTypeHash        = "hash"

	publicationValueComment = "comment"
	typeValueTip            = "tip"
)

// BuilderConfig are the fixed provenance fields added to every payload
type BuilderConfig struct {
	AppID      string
	WebsiteURL string
	Locale     string
}

// NewBuilder returns a Builder that generates UUID v4 metadata ids
func NewBuilder(config *BuilderConfig) *Builder {
	return &Builder{
		appID:      config.AppID,
		websiteURL: strings.TrimSuffix(config.WebsiteURL, "/"),
		locale:     config.Locale,
		newID:      uuid.NewString,
	}
}

// NewBuilderWithIDFunc returns a Builder using idFn to generate metadata ids
func NewBuilderWithIDFunc(config *BuilderConfig, idFn func() string) *Builder {
	builder := NewBuilder(config)
	builder.newID = idFn
	return builder
}

// Builder assembles PublicationMetadata from user drafts
type Builder struct {
	appID      string
	websiteURL string
	locale     string
	newID      func() string
}

// BuildParams are the inputs for a single build
type BuildParams struct {
	Channel     *model.Channel
	Publication *model.Publication
	Draft       *model.ContentDraft
}

// Build builds comment metadata, or tip metadata if the draft carries a tip
// transfer hash
func (b *Builder) Build(params *BuildParams) (*model.PublicationMetadata, error) {
	if params.Draft.IsTip() {
		return b.BuildTip(params)
	}
	return b.BuildComment(params)
}

// BuildComment builds the metadata for a plain comment
func (b *Builder) BuildComment(params *BuildParams) (*model.PublicationMetadata, error) {
	attributes := []*model.MetadataAttribute{
		stringAttribute(traitTypePublication, publicationValueComment),
		stringAttribute(traitTypeApp, b.appID),
	}
	return b.build(params, attributes)
}

// BuildTip builds the metadata for a tip comment referring to the tip
// transfer hash
func (b *Builder) BuildTip(params *BuildParams) (*model.PublicationMetadata, error) {
	if params.Draft.TipTxHash == "" {
		return nil, &model.ValidationError{Field: "tip", Message: "transaction hash is required"}
	}
	attributes := []*model.MetadataAttribute{
		stringAttribute(traitTypeApp, b.appID),
		stringAttribute(traitTypeType, typeValueTip),
		stringAttribute(traitTypeHash, params.Draft.TipTxHash),
	}
	return b.build(params, attributes)
}

func (b *Builder) build(params *BuildParams, attributes []*model.MetadataAttribute) (
	*model.PublicationMetadata, error) {
	content, err := ValidateContent(params.Draft.Text)
	if err != nil {
		return nil, err
	}
	pub := params.Publication
	return &model.PublicationMetadata{
		Version:          model.MetadataVersion,
		MetadataID:       b.newID(),
		Description:      content,
		Content:          content,
		Locale:           b.locale,
		MainContentFocus: model.MainContentFocusTextOnly,
		ExternalURL:      fmt.Sprintf("%v/watch/%v", b.websiteURL, pub.ID()),
		Name: fmt.Sprintf("%v's comment on video %v",
			params.Channel.Handle(), pub.MetadataName()),
		Attributes: attributes,
		Media:      []interface{}{},
		AppID:      b.appID,
	}, nil
}

// ValidateContent trims text and checks it is non-empty and within
// model.MaxContentLength characters
func ValidateContent(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", &model.ValidationError{Field: "comment", Message: "Enter valid comment"}
	}
	if utf8.RuneCountInString(trimmed) > model.MaxContentLength {
		return "", &model.ValidationError{
			Field:   "comment",
			Message: fmt.Sprintf("Comment should not exceed %v characters", model.MaxContentLength),
		}
	}
	return trimmed, nil
}

func stringAttribute(traitType string, value string) *model.MetadataAttribute {
	return &model.MetadataAttribute{
		DisplayType: model.DisplayTypeString,
		TraitType:   traitType,
		Value:       value,
	}
}
