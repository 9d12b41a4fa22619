package codeforces

// UserInfo is the profile part of a Codeforces user.
type UserInfo struct {
	Handle                  string `json:"handle"`
	Rating                  int    `json:"rating"`
	MaxRating               int    `json:"maxRating"`
	Rank                    string `json:"rank"`
	MaxRank                 string `json:"maxRank"`
	Avatar                  string `json:"avatar"`
	Contribution            int    `json:"contribution"`
	FriendOfCount           int    `json:"friendOfCount"`
	RegistrationTimeSeconds int64  `json:"registrationTimeSeconds"`
}

// Problem identifies a problem a submission was made to.
type Problem struct {
	ContestID int      `json:"contestId"`
	Index     string   `json:"index"`
	Name      string   `json:"name"`
	Rating    *int     `json:"rating,omitempty"`
	Tags      []string `json:"tags"`
}

// Submission is a single attempt as returned by user.status.
type Submission struct {
	ID                  int64   `json:"id"`
	ContestID           int     `json:"contestId"`
	Problem             Problem `json:"problem"`
	Verdict             string  `json:"verdict"`
	ProgrammingLanguage string  `json:"programmingLanguage"`
	CreationTimeSeconds int64   `json:"creationTimeSeconds"`
}

// Difficulty counts solved problems by rating class.
type Difficulty struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// Stats is the aggregate view of a submission list.
type Stats struct {
	TotalSubmissions     int            `json:"totalSubmissions"`
	SolvedProblems       int            `json:"solvedProblems"`
	SolvedKeys           []string       `json:"solvedKeys"`
	RatingDistribution   map[int]int    `json:"ratingDistribution"`
	TopicDistribution    map[string]int `json:"topicDistribution"`
	VerdictDistribution  map[string]int `json:"verdictDistribution"`
	LanguageDistribution map[string]int `json:"languageDistribution"`
	SolvedByDifficulty   Difficulty     `json:"solvedByDifficulty"`
}

// Profile is everything a sync needs: who the user is and what they solved.
type Profile struct {
	Info        UserInfo
	Submissions []Submission
	Stats       Stats
}

// HandleOr returns the canonical handle reported by the API, or fallback when it is empty.
func (u UserInfo) HandleOr(fallback string) string {
	if u.Handle != "" {
		return u.Handle
	}
	return fallback
}
