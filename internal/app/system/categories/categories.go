// Package categories defines the fixed category sets used by the FAQ and
// Q&A boards, and the activity tags for friend posts.
package categories

// FAQ categories.
const (
	FAQConnection   = "connection"
	FAQNotification = "notification"
	FAQFeatures     = "features"
	FAQTroubleshoot = "troubleshoot"
	FAQSetup        = "setup"
)

// Q&A categories.
const (
	QnATroubleshoot = "troubleshoot"
	QnAFeatures     = "features"
	QnASetup        = "setup"
	QnATips         = "tips"
	QnAGeneral      = "general"
)

var faqSet = map[string]struct{}{
	FAQConnection:   {},
	FAQNotification: {},
	FAQFeatures:     {},
	FAQTroubleshoot: {},
	FAQSetup:        {},
}

var qnaSet = map[string]struct{}{
	QnATroubleshoot: {},
	QnAFeatures:     {},
	QnASetup:        {},
	QnATips:         {},
	QnAGeneral:      {},
}

// Activities are the selectable activity tags for friend posts.
var Activities = []string{
	"러닝", "사이클링", "등산", "트레일러닝", "골프",
	"수영", "요가", "헬스", "테니스", "배드민턴",
}

var activitySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Activities))
	for _, a := range Activities {
		m[a] = struct{}{}
	}
	return m
}()

// ValidFAQ reports whether c is a known FAQ category.
func ValidFAQ(c string) bool {
	_, ok := faqSet[c]
	return ok
}

// ValidQnA reports whether c is a known Q&A category.
func ValidQnA(c string) bool {
	_, ok := qnaSet[c]
	return ok
}

// ValidActivity reports whether a is a known friend-post activity tag.
func ValidActivity(a string) bool {
	_, ok := activitySet[a]
	return ok
}

// FilterActivities returns the subset of tags that are known activities,
// preserving order and dropping duplicates.
func FilterActivities(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := activitySet[tag]; !ok {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
