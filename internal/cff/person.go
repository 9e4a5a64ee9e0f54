package cff

import (
	"strings"

	"github.com/pdiddy/citation-engine/pkg/types"
)

// particles are lowercase nobiliary particles recognized when splitting
// free-form names ("Ludwig van Beethoven" → particle "van").
var particles = map[string]bool{
	"van": true, "von": true, "de": true, "del": true, "della": true,
	"der": true, "den": true, "di": true, "da": true, "la": true, "le": true,
}

// SplitName converts a free-form person name into CFF author form.
// It splits on the last space: everything before is given names, the
// last token is the family name, with a recognized particle pulled out
// of the given names. Single-token names become entity form.
func SplitName(name string) types.Author {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return types.Author{}
	}

	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return types.Author{Name: name}
	}

	a := types.Author{
		GivenNames:  name[:idx],
		FamilyNames: name[idx+1:],
	}

	if gidx := strings.LastIndex(a.GivenNames, " "); gidx >= 0 {
		if last := a.GivenNames[gidx+1:]; particles[strings.ToLower(last)] {
			a.NameParticle = last
			a.GivenNames = a.GivenNames[:gidx]
		}
	} else if particles[strings.ToLower(a.GivenNames)] {
		a.NameParticle = a.GivenNames
		a.GivenNames = ""
	}

	return a
}

// FamilyFirst returns "Family, Given" form for sorting and BibTeX
// output, with the particle attached to the family name. Entities
// return their name unchanged.
func FamilyFirst(a types.Author) string {
	if a.IsEntity() {
		return a.Name
	}
	family := a.FamilyNames
	if a.NameParticle != "" {
		family = a.NameParticle + " " + family
	}
	if a.NameSuffix != "" {
		family += " " + a.NameSuffix
	}
	if a.GivenNames == "" {
		return family
	}
	return family + ", " + a.GivenNames
}
