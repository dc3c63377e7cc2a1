package matching

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestScore_AllFactors(t *testing.T) {
	chapter := uuid.New()
	mentor := Candidate{
		ID:                uuid.New(),
		Name:              "Mentor A",
		ChapterID:         &chapter,
		ChapterName:       "Lincoln HS",
		Interests:         []string{"music", "art"},
		Bio:               "set",
		ActiveMenteeCount: 0,
	}
	mentee := Candidate{
		ID:        uuid.New(),
		ChapterID: &chapter,
		Interests: []string{"music"},
	}

	res := Score(mentor, mentee)
	if res.Score != 70 {
		t.Fatalf("expected score 70 (10+20+30+10), got %d", res.Score)
	}
	want := []string{
		"1 shared interest: music",
		"Same chapter: Lincoln HS",
		"Mentor has no current mentees",
		"Mentor has a complete profile",
	}
	if len(res.Reasons) != len(want) {
		t.Fatalf("expected %d reasons, got %d: %v", len(want), len(res.Reasons), res.Reasons)
	}
	for i := range want {
		if res.Reasons[i] != want[i] {
			t.Fatalf("reason %d: expected %q, got %q", i, want[i], res.Reasons[i])
		}
	}
}

func TestScore_WorkloadZeroAtThreeMentees(t *testing.T) {
	chapter := uuid.New()
	mentor := Candidate{
		ID:                uuid.New(),
		ChapterID:         &chapter,
		ChapterName:       "Lincoln HS",
		Interests:         []string{"music", "art"},
		Bio:               "set",
		ActiveMenteeCount: 3,
	}
	mentee := Candidate{ID: uuid.New(), ChapterID: &chapter, Interests: []string{"music"}}

	res := Score(mentor, mentee)
	if res.Score != 40 {
		t.Fatalf("expected score 40 (10+20+0+10), got %d", res.Score)
	}
	for _, r := range res.Reasons {
		if strings.Contains(r, "mentee") {
			t.Fatalf("no workload reason expected at 3 active mentees, got %q", r)
		}
	}
}

func TestScore_SharedInterestsCapped(t *testing.T) {
	interests := []string{"music", "art", "coding", "chess", "robotics", "dance"}
	mentor := Candidate{ID: uuid.New(), Interests: interests}
	mentee := Candidate{ID: uuid.New(), Interests: interests, ChapterID: nil}

	res := Score(mentor, mentee)
	// 6 shared interests cap at 40, plus 30 workload for an unloaded mentor.
	if res.Score != 70 {
		t.Fatalf("expected score 70, got %d", res.Score)
	}
}

func TestScore_InterestMatchingIsCaseInsensitive(t *testing.T) {
	mentor := Candidate{ID: uuid.New(), Interests: []string{"Music", " CODING "}, ActiveMenteeCount: 3}
	mentee := Candidate{ID: uuid.New(), Interests: []string{"music", "coding"}}

	res := Score(mentor, mentee)
	if res.Score != 20 {
		t.Fatalf("expected score 20 from 2 shared interests, got %d", res.Score)
	}
	if res.Reasons[0] != "2 shared interests: music, coding" {
		t.Fatalf("unexpected interest reason: %q", res.Reasons[0])
	}
}

func TestScore_DifferentChapters(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	mentor := Candidate{ID: uuid.New(), ChapterID: &a, ChapterName: "North", ActiveMenteeCount: 3}
	mentee := Candidate{ID: uuid.New(), ChapterID: &b}

	if res := Score(mentor, mentee); res.Score != 0 {
		t.Fatalf("expected score 0, got %d", res.Score)
	}
}

func TestScore_NilChapterNeverMatches(t *testing.T) {
	a := uuid.New()
	mentor := Candidate{ID: uuid.New(), ActiveMenteeCount: 3}
	mentee := Candidate{ID: uuid.New(), ChapterID: &a}

	if res := Score(mentor, mentee); res.Score != 0 {
		t.Fatalf("expected score 0 for missing mentor chapter, got %d", res.Score)
	}
}

func TestScore_WithinBounds(t *testing.T) {
	chapter := uuid.New()
	mentor := Candidate{
		ID:          uuid.New(),
		ChapterID:   &chapter,
		ChapterName: "X",
		Interests:   []string{"a", "b", "c", "d", "e"},
		Bio:         "bio",
	}
	mentee := Candidate{ID: uuid.New(), ChapterID: &chapter, Interests: []string{"a", "b", "c", "d", "e"}}

	res := Score(mentor, mentee)
	if res.Score != MaxScore {
		t.Fatalf("expected max score %d, got %d", MaxScore, res.Score)
	}
	if res.Score > 100 {
		t.Fatalf("score above 100: %d", res.Score)
	}
}

func TestScore_BlankBioScoresNothing(t *testing.T) {
	mentor := Candidate{ID: uuid.New(), Bio: "   ", ActiveMenteeCount: 5}
	mentee := Candidate{ID: uuid.New()}

	if res := Score(mentor, mentee); res.Score != 0 {
		t.Fatalf("expected 0 for whitespace bio, got %d", res.Score)
	}
}
