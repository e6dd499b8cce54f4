package analyzer

import "InvestLens/internal/model"

// Recommendation strings, keyed on trend and Sharpe ratio.
const (
	RecommendBuy     = "Consider Buying: Positive trend with good risk-adjusted returns"
	RecommendWatch   = "Hold/Watch: Positive trend but lower risk-adjusted returns"
	RecommendCaution = "Hold with Caution: Negative trend but still some positive risk-adjusted returns"
	RecommendAvoid   = "Consider Selling/Avoiding: Negative trend with poor risk-adjusted returns"
)

func trendOf(shortMA, longMA *float64) model.TrendLabel {
	if shortMA == nil || longMA == nil {
		return ""
	}
	if *shortMA > *longMA {
		return model.TrendBullish
	}
	return model.TrendBearish
}

// Recommend maps the trend label and Sharpe ratio onto an advisory string.
// Either input missing leaves the recommendation empty; no branch is ever
// picked by default.
func Recommend(trend model.TrendLabel, sharpe *float64) string {
	if sharpe == nil {
		return ""
	}
	switch trend {
	case model.TrendBullish:
		if *sharpe > 1.0 {
			return RecommendBuy
		}
		return RecommendWatch
	case model.TrendBearish:
		if *sharpe > 0.5 {
			return RecommendCaution
		}
		return RecommendAvoid
	}
	return ""
}
