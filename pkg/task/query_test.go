package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const today = "2025-08-12"

func sample() []Task {
	return Seed(fixedNow())
}

func ids(tasks []Task) []int {
	out := make([]int, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestApply_SortDate(t *testing.T) {
	tasks := []Task{
		{ID: 1, DueDate: "2025-08-10"},
		{ID: 2, DueDate: "2025-08-09"},
	}
	got := Apply(tasks, Query{Sort: SortDate}, today)
	assert.Equal(t, []int{2, 1}, ids(got))
	assert.Equal(t, []int{1, 2}, ids(tasks), "input order untouched")
}

func TestApply_ZeroQueryReturnsAllByDate(t *testing.T) {
	got := Apply(sample(), Query{}, today)
	assert.Equal(t, []int{3, 2, 5, 1, 4}, ids(got))
}

func TestApply_SortPriorityIsStable(t *testing.T) {
	got := Apply(sample(), Query{Sort: SortPriority}, today)
	assert.Equal(t, []int{1, 3, 2, 5, 4}, ids(got))
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Priority.Weight(), got[i].Priority.Weight())
	}
}

func TestApply_SortStatus(t *testing.T) {
	tasks := sample()
	tasks[3].Status = Completed
	tasks[3].sync()

	got := Apply(tasks, Query{Sort: SortStatus}, today)
	assert.Equal(t, []int{1, 3, 5, 2, 4}, ids(got))
}

func TestApply_SortCategory(t *testing.T) {
	tasks := []Task{
		{ID: 1, Category: "work"},
		{ID: 2, Category: "Meeting"},
		{ID: 3, Category: "personal"},
		{ID: 4, Category: "Work"},
	}
	got := Apply(tasks, Query{Sort: SortCategory}, today)
	assert.Equal(t, []string{"Meeting", "personal"}, []string{got[0].Category, got[1].Category})
}

func TestApply_Filters(t *testing.T) {
	tasks := sample()
	tasks[4].Status = Completed // id 5
	tasks[4].sync()

	cases := []struct {
		filter Filter
		want   []int
	}{
		{FilterAll, []int{3, 2, 5, 1, 4}},
		{FilterHigh, []int{3, 1}},
		{FilterToday, []int{2}},
		{FilterOverdue, []int{3}},
		{FilterCompleted, []int{5}},
		{Filter("bogus"), []int{3, 2, 5, 1, 4}},
	}
	for _, tc := range cases {
		t.Run(string(tc.filter), func(t *testing.T) {
			got := Apply(tasks, Query{Filter: tc.filter, Sort: SortDate}, today)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestApply_OverdueExcludesToday(t *testing.T) {
	tasks := []Task{
		{ID: 1, DueDate: "2025-08-11", Status: Pending},
		{ID: 2, DueDate: today, Status: Pending},
		{ID: 3, DueDate: "2025-08-01", Status: Completed, Completed: true},
	}
	got := Apply(tasks, Query{Filter: FilterOverdue}, today)
	assert.Equal(t, []int{1}, ids(got))
}

func TestApply_Search(t *testing.T) {
	tasks := sample()

	assert.Equal(t, []int{3}, ids(Apply(tasks, Query{Search: "MEETING"}, today)), "category match")
	assert.Equal(t, []int{2}, ids(Apply(tasks, Query{Search: "progress"}, today)), "status match")
	assert.Equal(t, []int{2}, ids(Apply(tasks, Query{Search: "proposal"}, today)), "title match")
	assert.Empty(t, Apply(tasks, Query{Search: "zzz"}, today))
}

func TestApply_SearchThenFilter(t *testing.T) {
	got := Apply(sample(), Query{Search: "work", Filter: FilterHigh, Sort: SortDate}, today)
	assert.Equal(t, []int{1}, ids(got))
}
