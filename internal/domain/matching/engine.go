package matching

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Candidate carries the slice of a person the scorer looks at. The usecase
// layer maps directory snapshots into this shape; the engine itself stays
// pure and does no I/O.
type Candidate struct {
	ID                uuid.UUID
	Name              string
	ChapterID         *uuid.UUID
	ChapterName       string
	Interests         []string
	Bio               string
	ActiveMenteeCount int
}

const (
	maxInterestPoints = 40
	perInterestPoints = 10
	sameChapterPoints = 20
	maxWorkloadPoints = 30
	perMenteePenalty  = 10
	completeBioPoints = 10

	MaxScore = maxInterestPoints + sameChapterPoints + maxWorkloadPoints + completeBioPoints
)

type Result struct {
	Score   int
	Reasons []string
}

// Score computes the additive mentor-fit score for a mentee. Reasons are
// appended in a fixed factor order (interests, chapter, workload, profile);
// dashboards render them as-is, so the order is part of the contract.
func Score(mentor, mentee Candidate) Result {
	var res Result

	shared := sharedInterests(mentor.Interests, mentee.Interests)
	if n := len(shared); n > 0 {
		pts := n * perInterestPoints
		if pts > maxInterestPoints {
			pts = maxInterestPoints
		}
		res.Score += pts
		noun := "shared interests"
		if n == 1 {
			noun = "shared interest"
		}
		res.Reasons = append(res.Reasons, fmt.Sprintf("%d %s: %s", n, noun, strings.Join(shared, ", ")))
	}

	if mentor.ChapterID != nil && mentee.ChapterID != nil && *mentor.ChapterID == *mentee.ChapterID {
		res.Score += sameChapterPoints
		res.Reasons = append(res.Reasons, "Same chapter: "+mentor.ChapterName)
	}

	// Workload counts ACTIVE pairings of any type, not just the type being
	// matched. Holistic mentor load is the product behavior here.
	workload := maxWorkloadPoints - perMenteePenalty*mentor.ActiveMenteeCount
	if workload > 0 {
		res.Score += workload
		if mentor.ActiveMenteeCount == 0 {
			res.Reasons = append(res.Reasons, "Mentor has no current mentees")
		} else {
			res.Reasons = append(res.Reasons, "Mentor has capacity for more mentees")
		}
	}

	if strings.TrimSpace(mentor.Bio) != "" {
		res.Score += completeBioPoints
		res.Reasons = append(res.Reasons, "Mentor has a complete profile")
	}

	return res
}

// sharedInterests intersects case-insensitively, deduplicates, and keeps
// the mentee's ordering and original casing for display.
func sharedInterests(mentorInterests, menteeInterests []string) []string {
	if len(mentorInterests) == 0 || len(menteeInterests) == 0 {
		return nil
	}

	mentorSet := make(map[string]struct{}, len(mentorInterests))
	for _, it := range mentorInterests {
		k := strings.ToLower(strings.TrimSpace(it))
		if k == "" {
			continue
		}
		mentorSet[k] = struct{}{}
	}

	seen := make(map[string]struct{}, len(menteeInterests))
	out := make([]string, 0, len(menteeInterests))
	for _, it := range menteeInterests {
		k := strings.ToLower(strings.TrimSpace(it))
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		if _, ok := mentorSet[k]; !ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, strings.TrimSpace(it))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
