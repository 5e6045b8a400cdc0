package review

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusFlagged  Status = "flagged"
)

var moderationTransitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected, StatusFlagged},
	StatusFlagged:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusFlagged, StatusRejected},
	// rejected is terminal
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusFlagged:
		return true
	default:
		return false
	}
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range moderationTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

type ModerationAction string

const (
	ActionApprove ModerationAction = "approve"
	ActionReject  ModerationAction = "reject"
	ActionFlag    ModerationAction = "flag"
)

func (a ModerationAction) Target() (Status, bool) {
	switch a {
	case ActionApprove:
		return StatusApproved, true
	case ActionReject:
		return StatusRejected, true
	case ActionFlag:
		return StatusFlagged, true
	default:
		return "", false
	}
}

type VoteAction string

const (
	VoteLike    VoteAction = "like"
	VoteDislike VoteAction = "dislike"
)

func (v VoteAction) IsValid() bool {
	return v == VoteLike || v == VoteDislike
}

type Category string

const (
	CategoryCleanliness Category = "cleanliness"
	CategoryLocation    Category = "location"
	CategoryService     Category = "service"
	CategoryValue       Category = "value"
	CategoryAmenities   Category = "amenities"
)

// Categories is the fixed rating set, in display order.
var Categories = []Category{
	CategoryCleanliness,
	CategoryLocation,
	CategoryService,
	CategoryValue,
	CategoryAmenities,
}

func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
