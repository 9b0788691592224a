package aggregation

import "github.com/noah-isme/campus-portal-api/internal/models"

// WeightedCriterion is the itemised contribution of one assessment.
type WeightedCriterion struct {
	Assessment string
	Weightage  float64
	TotalMarks float64
	Obtained   float64
	Weighted   float64
	Missing    bool
}

// WeightedMarks holds the itemised breakdown and its total.
type WeightedMarks struct {
	Criteria []WeightedCriterion
	Total    float64
}

// Weighted computes obtained/total*weightage per criterion (two decimals). A missing
// or non-numeric obtained mark counts as 0 and is flagged; a criterion without a
// positive total contributes 0. Total is the rounded sum of the itemised values so
// the breakdown and the aggregate always agree.
func Weighted(criteria []models.Criterion, obtained map[string]models.Scalar) WeightedMarks {
	result := WeightedMarks{Criteria: make([]WeightedCriterion, 0, len(criteria))}
	var sum float64
	for _, criterion := range criteria {
		weightage, _ := criterion.Weightage.Float()
		total, _ := criterion.TotalMarks.Float()

		item := WeightedCriterion{
			Assessment: criterion.Assessment,
			Weightage:  weightage,
			TotalMarks: total,
		}
		mark, ok := obtained[criterion.Assessment].Float()
		if !ok {
			item.Missing = true
			mark = 0
		}
		item.Obtained = mark
		if total > 0 {
			item.Weighted = Round2(mark / total * weightage)
		}
		sum += item.Weighted
		result.Criteria = append(result.Criteria, item)
	}
	result.Total = Round2(sum)
	return result
}
