package utils

import (
	"fmt"
	"strings"

	"stopover/config"
)

// assetPaths maps catalog image keys onto relative asset paths. The widget
// resolves these either against the local asset bundle or the CDN, depending
// on configuration.
var assetPaths = map[string]string{
	"category-standard":      "images/categories/standard.jpg",
	"category-premium":       "images/categories/premium.jpg",
	"category-premium-beach": "images/categories/premium-beach.jpg",
	"category-luxury":        "images/categories/luxury.jpg",
	"hotel-oryx-city":        "images/hotels/oryx-city.jpg",
	"hotel-corniche-park":    "images/hotels/corniche-park.jpg",
	"hotel-millennium":       "images/hotels/millennium.jpg",
	"hotel-west-bay-grand":   "images/hotels/west-bay-grand.jpg",
	"hotel-banana-island":    "images/hotels/banana-island.jpg",
	"hotel-sealine-beach":    "images/hotels/sealine-beach.jpg",
	"hotel-raffles-iconic":   "images/hotels/raffles.jpg",
	"hotel-pearl-royal":      "images/hotels/pearl-royal.jpg",
	"tour-desert-safari":     "images/tours/desert-safari.jpg",
	"tour-city-highlights":   "images/tours/city-highlights.jpg",
	"tour-dhow-cruise":       "images/tours/dhow-cruise.jpg",
	"tour-pearl-diving":      "images/tours/pearl-diving.jpg",
	"transfer-private":       "images/transfers/private.jpg",
	"transfer-luxury":        "images/transfers/luxury.jpg",
}

// ResolveAssetURL maps an image key to a servable URL. Unknown keys resolve to
// an empty string; the widget renders a placeholder for those.
func ResolveAssetURL(key string) string {
	rel, ok := assetPaths[key]
	if !ok {
		return ""
	}
	if config.AppConfig.UseCDNAssets && config.AppConfig.CDNBaseURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(config.AppConfig.CDNBaseURL, "/"), rel)
	}
	return "/assets/" + rel
}

// AssetURLMap resolves the whole table at once for the get-asset-urls action.
func AssetURLMap() map[string]string {
	out := make(map[string]string, len(assetPaths))
	for key := range assetPaths {
		out[key] = ResolveAssetURL(key)
	}
	return out
}
