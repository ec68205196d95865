package model_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tapexyz/tape-publisher/pkg/model"
)

func TestChannelCapabilities(t *testing.T) {
	channel := model.NewChannel(&model.ChannelParams{ID: "0x2d", Handle: "tape.lens"})
	if channel.CanUseRelay() {
		t.Errorf("Should not be able to use relay without a dispatcher")
	}
	if channel.IsSponsored() {
		t.Errorf("Should not be sponsored without a dispatcher")
	}
	if channel.UsingOldDispatcher() {
		t.Errorf("Should not be using old dispatcher without a dispatcher")
	}

	channel = model.NewChannel(&model.ChannelParams{
		ID:     "0x2d",
		Handle: "tape.lens",
		Dispatcher: &model.Dispatcher{
			Address:     common.HexToAddress("0xd1feccf6881970105dfb2b654054174007f0e07e"),
			CanUseRelay: true,
			Sponsor:     true,
		},
	})
	if !channel.CanUseRelay() {
		t.Errorf("Should be able to use relay")
	}
	if !channel.IsSponsored() {
		t.Errorf("Should be sponsored")
	}
	if !channel.UsingOldDispatcher() {
		t.Errorf("Should have detected the old dispatcher regardless of case")
	}
}

func TestTrimLensHandle(t *testing.T) {
	cases := []struct {
		handle     string
		keepSuffix bool
		expected   string
	}{
		{"", false, ""},
		{"lensprotocol", false, "lensprotocol"},
		{"LensProtocol", true, "LensProtocol"},
		{"tape.lens", false, "tape"},
		{"tape.test", false, "tape"},
		{"tape.eth", false, "tape"},
		{"tape", true, "tape.lens"},
		{"tape.lens", true, "tape.lens"},
	}
	for _, c := range cases {
		trimmed := model.TrimLensHandle(c.handle, c.keepSuffix, ".lens")
		if trimmed != c.expected {
			t.Errorf("Trimmed %q should have been %q, got %q", c.handle, c.expected, trimmed)
		}
	}
}
