package models

// Intent is a discrete label summarizing what a visitor's message is about.
type Intent string

const (
	IntentBuyProperty  Intent = "buy_property"
	IntentSellProperty Intent = "sell_property"
	IntentRentProperty Intent = "rent_property"
	IntentInvestment   Intent = "investment"
	IntentValuation    Intent = "valuation"
	IntentViewing      Intent = "viewing"
	IntentHumanAgent   Intent = "human_agent"
	IntentGreeting     Intent = "greeting"
	IntentGeneral      Intent = "general"
)
