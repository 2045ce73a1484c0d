package voices

import (
	"testing"

	"github.com/inkvoice/inkvoice/internal/apperr"
	"github.com/inkvoice/inkvoice/internal/models"
)

func profile(id, gender, ageRange, personality string) models.VoiceProfile {
	return models.VoiceProfile{
		ID:          id,
		Name:        "voice-" + id,
		Gender:      gender,
		AgeRange:    ageRange,
		Personality: personality,
	}
}

func TestAssignPersonalityPreference(t *testing.T) {
	catalog := []models.VoiceProfile{
		profile("1", "female", "young", "serious"),
		profile("2", "female", "young", "cheerful"),
	}
	character := models.Character{Gender: "female", AgeRange: "young", Personality: "cheerful"}

	assignment, err := Assign(character, catalog)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	if assignment.Profile.ID != "2" {
		t.Errorf("Assign() picked %s, want 2", assignment.Profile.ID)
	}
	if assignment.Fallback {
		t.Error("Assign() reported fallback on a direct match")
	}
}

func TestAssignPersonalityCaseInsensitiveSubstring(t *testing.T) {
	catalog := []models.VoiceProfile{
		profile("1", "male", "", "calm"),
		profile("2", "male", "", "Warm and Cheerful narrator"),
	}
	character := models.Character{Gender: "male", Personality: "CHEERFUL"}

	assignment, err := Assign(character, catalog)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	if assignment.Profile.ID != "2" {
		t.Errorf("Assign() picked %s, want 2", assignment.Profile.ID)
	}
}

func TestAssignDeterminism(t *testing.T) {
	catalog := []models.VoiceProfile{
		profile("1", "female", "", ""),
		profile("2", "female", "", ""),
		profile("3", "female", "", ""),
	}
	character := models.Character{Gender: "female"}

	first, err := Assign(character, catalog)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Assign(character, catalog)
		if err != nil {
			t.Fatalf("Assign() error = %v", err)
		}
		if again.Profile.ID != first.Profile.ID {
			t.Fatalf("Assign() not deterministic: got %s then %s", first.Profile.ID, again.Profile.ID)
		}
	}
	if first.Profile.ID != "1" {
		t.Errorf("Assign() picked %s, want first catalog entry", first.Profile.ID)
	}
}

func TestAssignFallbackToGenderOnly(t *testing.T) {
	catalog := []models.VoiceProfile{
		profile("1", "male", "old", ""),
	}
	character := models.Character{Gender: "male", AgeRange: "young"}

	assignment, err := Assign(character, catalog)
	if err != nil {
		t.Fatalf("Assign() error = %v, want fallback match", err)
	}
	if assignment.Profile.ID != "1" {
		t.Errorf("Assign() picked %s, want 1", assignment.Profile.ID)
	}
	if !assignment.Fallback {
		t.Error("Assign() did not report the relaxed path")
	}
}

// If any profile of the requested gender exists, narrowing must never
// cause a not-found.
func TestAssignFallbackGuarantee(t *testing.T) {
	catalog := []models.VoiceProfile{
		profile("1", "female", "old", "serious"),
	}
	for _, ageRange := range []string{"young", "middle", "unknown-tag"} {
		character := models.Character{Gender: "female", AgeRange: ageRange}
		if _, err := Assign(character, catalog); err != nil {
			t.Errorf("Assign(age_range=%q) error = %v, want fallback match", ageRange, err)
		}
	}
}

func TestAssignNoProfileForGender(t *testing.T) {
	catalog := []models.VoiceProfile{
		profile("1", "female", "", ""),
		profile("2", "female", "young", "cheerful"),
	}
	character := models.Character{Gender: "male"}

	_, err := Assign(character, catalog)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("Assign() error = %v, want not_found", err)
	}
}

func TestAssignEmptyGenderIsValidationError(t *testing.T) {
	catalog := []models.VoiceProfile{
		profile("1", "female", "", ""),
	}

	_, err := Assign(models.Character{}, catalog)
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("Assign() error = %v, want validation", err)
	}
}

func TestAssignEmptyCatalog(t *testing.T) {
	_, err := Assign(models.Character{Gender: "neutral"}, nil)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("Assign() error = %v, want not_found", err)
	}
}
