package seo

import (
	"encoding/json"
	"strconv"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Organization returns a minimal Organization schema.
func Organization(name, url, email string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if email != "" {
		m["email"] = email
	}
	return m
}

// ProfessionalService describes the consulting business and the services it offers.
func ProfessionalService(name, url, description string, services []string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "ProfessionalService",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if description != "" {
		m["description"] = description
	}
	if len(services) > 0 {
		offers := make([]map[string]any, 0, len(services))
		for _, s := range services {
			offers = append(offers, map[string]any{
				"@type":       "Offer",
				"itemOffered": map[string]any{"@type": "Service", "name": s},
			})
		}
		m["hasOfferCatalog"] = map[string]any{
			"@type":           "OfferCatalog",
			"name":            "Services",
			"itemListElement": offers,
		}
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// Offer returns a schema.org Offer for a priced engagement. minor is in minor units (cents).
func Offer(name, url string, minor int64, currency string) map[string]any {
	m := map[string]any{
		"@context":      "https://schema.org",
		"@type":         "Offer",
		"name":          name,
		"price":         priceString(minor),
		"priceCurrency": currency,
		"availability":  "https://schema.org/InStock",
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

func priceString(minor int64) string {
	return strconv.FormatFloat(float64(minor)/100, 'f', 2, 64)
}
