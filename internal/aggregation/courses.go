package aggregation

import "github.com/noah-isme/campus-portal-api/internal/models"

// CoursePartition splits a student's course IDs into current and completed.
type CoursePartition struct {
	Current   []string
	Completed []string
}

// PartitionCourses returns de-duplicated current and completed ID lists. An ID present
// in both lists on the record is treated as completed so the partition stays disjoint.
func PartitionCourses(student *models.Student) CoursePartition {
	if student == nil {
		return CoursePartition{Current: []string{}, Completed: []string{}}
	}
	completed := Unique(student.CompletedCourses)
	completedSet := toSet(completed)

	current := make([]string, 0, len(student.CurrentCourses))
	for _, id := range Unique(student.CurrentCourses) {
		if _, done := completedSet[id]; done {
			continue
		}
		current = append(current, id)
	}
	return CoursePartition{Current: current, Completed: completed}
}

// PendingWithdrawals returns current IDs for which no withdrawal has been filed.
func PendingWithdrawals(current, withdrawn []string) []string {
	withdrawnSet := toSet(withdrawn)
	pending := make([]string, 0, len(current))
	for _, id := range Unique(current) {
		if _, ok := withdrawnSet[id]; ok {
			continue
		}
		pending = append(pending, id)
	}
	return pending
}

// Unique drops empty and repeated IDs preserving first-seen order.
func Unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
