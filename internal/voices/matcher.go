// Package voices selects a voice profile for a character and persists the
// curated profile catalog.
package voices

import (
	"strings"

	"github.com/inkvoice/inkvoice/internal/apperr"
	"github.com/inkvoice/inkvoice/internal/models"
)

// Assignment is the result of matching a character against the catalog.
// It is a point-in-time decision: calling Assign again may pick a different
// profile if the catalog changed in between.
type Assignment struct {
	Profile  *models.VoiceProfile
	Fallback bool // relaxed gender-only path was used
}

// Assign picks a voice profile for the character, deterministically and in
// catalog order:
//
//  1. filter by gender, narrowed by age_range when supplied;
//  2. if the narrowed filter is empty, relax to gender only;
//  3. within the matched set, prefer the first profile whose personality
//     contains the character's personality tag case-insensitively.
//
// An empty gender is a precondition violation, not a matching miss.
func Assign(character models.Character, catalog []models.VoiceProfile) (Assignment, error) {
	if character.Gender == "" {
		return Assignment{}, apperr.Validation("character gender is required")
	}

	matched := filterProfiles(catalog, character.Gender, character.AgeRange)

	fallback := false
	if len(matched) == 0 && character.AgeRange != "" {
		matched = filterProfiles(catalog, character.Gender, "")
		fallback = true
	}
	if len(matched) == 0 {
		return Assignment{}, apperr.Newf(apperr.KindNotFound, "no voice profile for gender %q", character.Gender)
	}

	selected := matched[0]
	if character.Personality != "" {
		want := strings.ToLower(character.Personality)
		for i := range matched {
			if strings.Contains(strings.ToLower(matched[i].Personality), want) {
				selected = matched[i]
				break
			}
		}
	}

	return Assignment{Profile: selected, Fallback: fallback}, nil
}

func filterProfiles(catalog []models.VoiceProfile, gender, ageRange string) []*models.VoiceProfile {
	var matched []*models.VoiceProfile
	for i := range catalog {
		p := &catalog[i]
		if p.Gender != gender {
			continue
		}
		if ageRange != "" && p.AgeRange != ageRange {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}
