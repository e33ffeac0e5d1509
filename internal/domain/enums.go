package domain

import "strings"

type ConversationState string

const (
	StateInitialPlanning       ConversationState = "initial_planning"
	StateAwaitingUserSelection ConversationState = "awaiting_user_selection"
	StatePlanningInProgress    ConversationState = "planning_in_progress"
	StatePresentingResults     ConversationState = "presenting_results"
	StateAwaitingFeedback      ConversationState = "awaiting_feedback"
	StateHandlingQuestions     ConversationState = "handling_questions"
	StateModifyingPlan         ConversationState = "modifying_plan"
	StatePlanConfirmed         ConversationState = "plan_confirmed"
)

type InteractionType string

const (
	InteractionInitialQuery        InteractionType = "initial_query"
	InteractionSelectionRequired   InteractionType = "selection_required"
	InteractionClarificationNeeded InteractionType = "clarification_needed"
	InteractionInformationRequest  InteractionType = "information_request"
	InteractionPlanModification    InteractionType = "plan_modification"
	InteractionGeneralQuestion     InteractionType = "general_question"
	InteractionConfirmation        InteractionType = "confirmation"
)

// Category is the closed set of venue kinds. The string value is a stable
// identifier; Label returns the Korean name users type as an interest.
type Category string

const (
	CategoryCulturalSite Category = "cultural_site"
	CategoryCafe         Category = "cafe"
	CategoryRestaurant   Category = "restaurant"
	CategoryMuseum       Category = "museum"
	CategoryPark         Category = "park"
	CategoryShopping     Category = "shopping"
	CategoryViewpoint    Category = "viewpoint"
	CategoryThemePark    Category = "theme_park"
	CategoryBeach        Category = "beach"
	CategoryGallery      Category = "gallery"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryCulturalSite, CategoryCafe, CategoryRestaurant, CategoryMuseum, CategoryPark,
	CategoryShopping, CategoryViewpoint, CategoryThemePark, CategoryBeach, CategoryGallery,
}

var categoryLabels = map[Category]string{
	CategoryCulturalSite: "문화재",
	CategoryCafe:         "카페",
	CategoryRestaurant:   "레스토랑",
	CategoryMuseum:       "박물관",
	CategoryPark:         "공원",
	CategoryShopping:     "쇼핑",
	CategoryViewpoint:    "전망대",
	CategoryThemePark:    "테마파크",
	CategoryBeach:        "해변",
	CategoryGallery:      "갤러리",
}

var categoryEmoji = map[Category]string{
	CategoryCulturalSite: "🏛️",
	CategoryCafe:         "☕",
	CategoryRestaurant:   "🍽️",
	CategoryMuseum:       "🏛️",
	CategoryPark:         "🌳",
	CategoryShopping:     "🛍️",
	CategoryViewpoint:    "🌆",
	CategoryThemePark:    "🎢",
	CategoryBeach:        "🏖️",
	CategoryGallery:      "🎨",
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

func (c Category) Emoji() string {
	if e, ok := categoryEmoji[c]; ok {
		return e
	}
	return "📍"
}

// Matches reports whether an interest names this category, either by its
// identifier or by its Korean label.
func (c Category) Matches(interest string) bool {
	parsed, ok := ParseCategory(interest)
	return ok && parsed == c
}

// ParseCategory accepts a category identifier ("cafe") or label ("카페").
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if c := Category(strings.ToLower(s)); c.Valid() {
		return c, true
	}
	for c, label := range categoryLabels {
		if label == s {
			return c, true
		}
	}
	return "", false
}

type PriceRange string

const (
	PriceFree    PriceRange = "free"
	PriceLow     PriceRange = "low"
	PriceMedium  PriceRange = "medium"
	PriceHigh    PriceRange = "high"
	PricePremium PriceRange = "premium"
)

var priceLabels = map[PriceRange]string{
	PriceFree:    "무료",
	PriceLow:     "1만원 미만",
	PriceMedium:  "1-3만원",
	PriceHigh:    "3-5만원",
	PricePremium: "5만원 이상",
}

func (p PriceRange) Label() string {
	if l, ok := priceLabels[p]; ok {
		return l
	}
	return string(p)
}

func (p PriceRange) Valid() bool {
	_, ok := priceLabels[p]
	return ok
}

// PriceRangeForCost derives the tier from a per-person cost.
func PriceRangeForCost(cost int) PriceRange {
	switch {
	case cost <= 0:
		return PriceFree
	case cost < 10000:
		return PriceLow
	case cost < 30000:
		return PriceMedium
	case cost < 50000:
		return PriceHigh
	default:
		return PricePremium
	}
}

type TransportMode string

const (
	TransportWalking TransportMode = "walking"
	TransportPublic  TransportMode = "public_transport"
	TransportTaxi    TransportMode = "taxi"
)

func (m TransportMode) Label() string {
	switch m {
	case TransportWalking:
		return "도보"
	case TransportPublic:
		return "대중교통"
	case TransportTaxi:
		return "택시"
	default:
		return string(m)
	}
}

// Pace selects how a plan's stops are stretched or compressed.
type Pace string

const (
	PaceRelaxed Pace = "relaxed"
	PaceNormal  Pace = "normal"
	PaceTight   Pace = "tight"
)
