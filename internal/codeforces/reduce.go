package codeforces

import (
	"sort"
	"strconv"
	"strings"
)

const (
	VerdictAccepted = "OK"
	verdictUnknown  = "UNKNOWN"

	easyMaxRating   = 1200
	mediumMaxRating = 1800
)

// ProblemKey identifies a problem as "<contestId>-<index>".
func ProblemKey(p Problem) string {
	return strconv.Itoa(p.ContestID) + "-" + p.Index
}

// Reduce aggregates submissions. Every submission counts towards the verdict
// and language histograms; only the first accepted submission of each problem
// counts towards ratings, difficulty classes and topics.
func Reduce(subs []Submission) Stats {
	stats := Stats{
		TotalSubmissions:     len(subs),
		RatingDistribution:   map[int]int{},
		TopicDistribution:    map[string]int{},
		VerdictDistribution:  map[string]int{},
		LanguageDistribution: map[string]int{},
	}

	solved := make(map[string]struct{})
	for _, sub := range subs {
		verdict := sub.Verdict
		if verdict == "" {
			verdict = verdictUnknown
		}
		stats.VerdictDistribution[verdict]++

		if lang := languageFamily(sub.ProgrammingLanguage); lang != "" {
			stats.LanguageDistribution[lang]++
		}

		if sub.Verdict != VerdictAccepted {
			continue
		}

		key := ProblemKey(sub.Problem)
		if _, seen := solved[key]; seen {
			continue
		}
		solved[key] = struct{}{}

		if r := sub.Problem.Rating; r != nil && *r > 0 {
			stats.RatingDistribution[*r/100*100]++
			switch {
			case *r <= easyMaxRating:
				stats.SolvedByDifficulty.Easy++
			case *r <= mediumMaxRating:
				stats.SolvedByDifficulty.Medium++
			default:
				stats.SolvedByDifficulty.Hard++
			}
		}

		for _, tag := range sub.Problem.Tags {
			stats.TopicDistribution[tag]++
		}
	}

	stats.SolvedProblems = len(solved)
	stats.SolvedKeys = make([]string, 0, len(solved))
	for key := range solved {
		stats.SolvedKeys = append(stats.SolvedKeys, key)
	}
	sort.Strings(stats.SolvedKeys)

	return stats
}

// languageFamily keeps the first word of a language name, "GNU C++17" becomes "GNU".
func languageFamily(lang string) string {
	fields := strings.Fields(lang)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
