package metadata_test

import (
	"strings"
	"testing"

	"github.com/tapexyz/tape-publisher/pkg/metadata"
	"github.com/tapexyz/tape-publisher/pkg/model"
)

const (
	testAppID      = "Live"
	testWebsiteURL = "https://tape.xyz/"
)

func testBuilder(ids ...string) *metadata.Builder {
	idx := 0
	return metadata.NewBuilderWithIDFunc(&metadata.BuilderConfig{
		AppID:      testAppID,
		WebsiteURL: testWebsiteURL,
		Locale:     "en",
	}, func() string {
		id := ids[idx%len(ids)]
		idx++
		return id
	})
}

func testParams(text string, tipHash string) *metadata.BuildParams {
	return &metadata.BuildParams{
		Channel: model.NewChannel(&model.ChannelParams{ID: "0x2d", Handle: "tape.lens"}),
		Publication: model.NewPublication(&model.PublicationParams{
			ID:           "0x01-0x02",
			MetadataName: "My first video",
		}),
		Draft: &model.ContentDraft{Text: text, TipTxHash: tipHash},
	}
}

func TestBuildComment(t *testing.T) {
	meta, err := testBuilder("id-1").Build(testParams("  nice video \n", ""))
	if err != nil {
		t.Fatalf("Should not have failed to build: err: %v", err)
	}
	if meta.Content != "nice video" || meta.Description != "nice video" {
		t.Errorf("Content should have been trimmed: %q", meta.Content)
	}
	if meta.MetadataID != "id-1" {
		t.Errorf("Wrong metadata id: %v", meta.MetadataID)
	}
	if meta.ExternalURL != "https://tape.xyz/watch/0x01-0x02" {
		t.Errorf("Wrong external url: %v", meta.ExternalURL)
	}
	if meta.Name != "tape.lens's comment on video My first video" {
		t.Errorf("Wrong name: %v", meta.Name)
	}
	if meta.AppID != testAppID || meta.Locale != "en" || meta.Version != model.MetadataVersion {
		t.Errorf("Wrong provenance fields: %v %v %v", meta.AppID, meta.Locale, meta.Version)
	}
	if val, ok := meta.Attribute("publication"); !ok || val != "comment" {
		t.Errorf("Should have had the publication attribute")
	}
	if _, ok := meta.Attribute("hash"); ok {
		t.Errorf("Comment should not have a hash attribute")
	}
}

func TestBuildTip(t *testing.T) {
	meta, err := testBuilder("id-1").Build(testParams("Thanks for making this video!", "0xbeef"))
	if err != nil {
		t.Fatalf("Should not have failed to build: err: %v", err)
	}
	if val, _ := meta.Attribute("type"); val != "tip" {
		t.Errorf("Wrong type attribute: %v", val)
	}
	if val, _ := meta.Attribute("hash"); val != "0xbeef" {
		t.Errorf("Wrong hash attribute: %v", val)
	}
	if val, _ := meta.Attribute("app"); val != testAppID {
		t.Errorf("Wrong app attribute: %v", val)
	}
}

func TestBuildInvalidContent(t *testing.T) {
	builder := testBuilder("id-1")
	_, err := builder.Build(testParams("   ", ""))
	if !model.IsValidationError(err) {
		t.Errorf("Should have returned a validation error for empty text: err: %v", err)
	}
	_, err = builder.Build(testParams(strings.Repeat("a", model.MaxContentLength+1), ""))
	if !model.IsValidationError(err) {
		t.Errorf("Should have returned a validation error for long text: err: %v", err)
	}
	_, err = builder.Build(testParams(strings.Repeat("é", model.MaxContentLength), ""))
	if err != nil {
		t.Errorf("Should have counted characters, not bytes: err: %v", err)
	}
	_, err = builder.BuildTip(testParams("tip", ""))
	if !model.IsValidationError(err) {
		t.Errorf("Should have required a tip hash: err: %v", err)
	}
}
