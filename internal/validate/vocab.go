// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

// referenceTypes is the closed CFF 1.2.0 vocabulary for reference and
// preferred-citation types.
var referenceTypes = map[string]bool{
	"art":                      true,
	"article":                  true,
	"audiovisual":              true,
	"bill":                     true,
	"blog":                     true,
	"book":                     true,
	"catalogue":                true,
	"conference":               true,
	"conference-paper":         true,
	"data":                     true,
	"database":                 true,
	"dictionary":               true,
	"edited-work":              true,
	"encyclopedia":             true,
	"film-broadcast":           true,
	"generic":                  true,
	"government-document":      true,
	"grant":                    true,
	"hearing":                  true,
	"historical-work":          true,
	"legal-case":               true,
	"legal-rule":               true,
	"magazine-article":         true,
	"manual":                   true,
	"map":                      true,
	"multimedia":               true,
	"music":                    true,
	"newspaper-article":        true,
	"pamphlet":                 true,
	"patent":                   true,
	"personal-communication":   true,
	"proceedings":              true,
	"report":                   true,
	"serial":                   true,
	"slides":                   true,
	"software":                 true,
	"software-code":            true,
	"software-container":       true,
	"software-executable":      true,
	"software-virtual-machine": true,
	"sound-recording":          true,
	"standard":                 true,
	"statute":                  true,
	"thesis":                   true,
	"unpublished":              true,
	"video":                    true,
	"website":                  true,
}
