package view

type Category string

const (
	Positive Category = "positive"
	Caution  Category = "caution"
	Negative Category = "negative"
	Neutral  Category = "neutral"
)

var statusCategories = map[string]Category{
	"completed":   Positive,
	"approved":    Positive,
	"paid":        Positive,
	"resolved":    Positive,
	"sent":        Positive,
	"in-progress": Caution,
	"pending":     Caution,
	"open":        Caution,
	"uploaded":    Caution,
	"rejected":    Negative,
	"absent":      Negative,
}

// Classify returns the badge category for a status token. Unknown tokens are neutral.
func Classify(status string) Category {
	if c, ok := statusCategories[status]; ok {
		return c
	}
	return Neutral
}

func ClassifyPriority(priority string) Category {
	switch priority {
	case "high", "urgent":
		return Negative
	case "medium":
		return Caution
	default:
		return Neutral
	}
}

func ClassifyRole(role string) Category {
	switch role {
	case "admin":
		return Negative
	case "hr":
		return Caution
	default:
		return Neutral
	}
}

// Badge is a status value together with its display category.
type Badge struct {
	Label    string   `json:"label"`
	Category Category `json:"category"`
}

func StatusBadge(status string) Badge {
	return Badge{Label: status, Category: Classify(status)}
}

func PriorityBadge(priority string) Badge {
	return Badge{Label: priority, Category: ClassifyPriority(priority)}
}
