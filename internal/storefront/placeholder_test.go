package storefront

import (
	"reflect"
	"testing"

	"github.com/leafline/leafline-backend/pkg/types"
)

func strPtr(s string) *string { return &s }

func TestResolvePropsSubstitutesKnownTokens(t *testing.T) {
	vendor := VendorData{
		StoreName:    "Wilson's",
		Slug:         "wilsons",
		StoreTagline: strPtr("Top shelf only"),
		LogoURL:      strPtr("/logos/wilsons.png"),
	}
	props := types.JSONMap{
		"text": "Welcome to {{vendor.store_name}}",
		"href": "/{{vendor.slug}}/shop",
		"sub":  "{{vendor.store_tagline}}",
		"logo": "{{vendor.logo_url}}",
	}

	out := ResolveProps(props, vendor)

	if out["text"] != "Welcome to Wilson's" {
		t.Fatalf("store_name not resolved: %v", out["text"])
	}
	if out["href"] != "/wilsons/shop" {
		t.Fatalf("slug not resolved: %v", out["href"])
	}
	if out["sub"] != "Top shelf only" {
		t.Fatalf("tagline not resolved: %v", out["sub"])
	}
	if out["logo"] != "/logos/wilsons.png" {
		t.Fatalf("logo not resolved: %v", out["logo"])
	}
}

func TestResolvePropsAppliesDefaults(t *testing.T) {
	vendor := VendorData{StoreName: "Wilson's", Slug: "wilsons"}
	props := types.JSONMap{
		"tagline": "{{vendor.store_tagline}}",
		"logo":    "{{vendor.logo_url}}",
	}

	out := ResolveProps(props, vendor)

	if out["tagline"] != DefaultTagline {
		t.Fatalf("expected default tagline, got %v", out["tagline"])
	}
	if out["logo"] != DefaultLogoURL {
		t.Fatalf("expected default logo, got %v", out["logo"])
	}
}

func TestResolvePropsLeavesUnknownTokensVerbatim(t *testing.T) {
	out := ResolveProps(types.JSONMap{"text": "{{vendor.mystery_field}}"}, VendorData{StoreName: "X"})
	if out["text"] != "{{vendor.mystery_field}}" {
		t.Fatalf("unknown token should pass through verbatim, got %v", out["text"])
	}
}

func TestResolvePropsPassesThroughNonStrings(t *testing.T) {
	props := types.JSONMap{"height": float64(24), "enabled": true, "plain": "no tokens here"}
	out := ResolveProps(props, VendorData{StoreName: "X"})
	if !reflect.DeepEqual(map[string]any(out), map[string]any(props)) {
		t.Fatalf("non-token props changed: %v", out)
	}
}

func TestResolvePropsIsIdempotent(t *testing.T) {
	vendor := VendorData{StoreName: "Wilson's", Slug: "wilsons"}
	props := types.JSONMap{"text": "{{vendor.store_name}}", "tagline": "{{vendor.store_tagline}}"}

	once := ResolveProps(props, vendor)
	twice := ResolveProps(once, vendor)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("second resolve changed output: %v vs %v", once, twice)
	}
}

func TestResolvePropsDoesNotMutateInput(t *testing.T) {
	props := types.JSONMap{"text": "{{vendor.store_name}}"}
	_ = ResolveProps(props, VendorData{StoreName: "Wilson's"})
	if props["text"] != "{{vendor.store_name}}" {
		t.Fatalf("input map was mutated: %v", props["text"])
	}
}
