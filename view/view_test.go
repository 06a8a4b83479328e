package view

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stsysd/folio/model"
)

func sample() []model.Project {
	return []model.Project{
		{ID: 3, Title: "Weather Station", Description: "Sensors on a Raspberry Pi", Category: "iot", Status: "in-progress", Technologies: []string{"Go", "MQTT"}},
		{ID: 2, Title: "Shop", Description: "An online store", Category: "web", Status: "completed", Technologies: []string{"TypeScript", "React", "Go"}},
		{ID: 1, Title: "Notes", Description: "Offline first notes app", Category: "mobile", Status: "planned", Technologies: []string{"Kotlin"}},
	}
}

func titles(ps []model.Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Title
	}
	return out
}

func TestSearch(t *testing.T) {
	ps := sample()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"blank keeps all", "   ", []string{"Weather Station", "Shop", "Notes"}},
		{"title ignores case", "SHOP", []string{"Shop"}},
		{"description", "raspberry", []string{"Weather Station"}},
		{"technology", "go", []string{"Weather Station", "Shop"}},
		{"leading space matches inside a title", " station", []string{"Weather Station"}},
		{"padded query is not trimmed", "  kotlin ", []string{}},
		{"no match", "haskell", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(Search(ps, tt.query)))
		})
	}
}

func TestEmptyQueryIsIdentity(t *testing.T) {
	ps := sample()
	assert.Equal(t, ps, Search(ps, ""))
	assert.Equal(t, ps, FilterByCategory(ps, ""))
	assert.Equal(t, ps, Filter(ps, Query{}))
}

func TestFilterByCategory(t *testing.T) {
	ps := sample()
	assert.Equal(t, []string{"Shop"}, titles(FilterByCategory(ps, "web")))
	assert.Empty(t, FilterByCategory(ps, "Web"), "match is exact")
	assert.Empty(t, FilterByCategory(ps, "desktop"))
}

func TestFilterCombines(t *testing.T) {
	ps := sample()
	got := Filter(ps, Query{Text: "go", Category: "iot"})
	assert.Equal(t, []string{"Weather Station"}, titles(got))
}

func TestTechnologyCloud(t *testing.T) {
	ps := []model.Project{
		{Technologies: []string{"Go", "Go", "Rust"}},
		{Technologies: []string{"Go"}},
	}

	cloud := TechnologyCloud(ps)
	require.Len(t, cloud, 2)
	assert.Equal(t, "Go", cloud[0].Name)
	assert.Equal(t, 3, cloud[0].Count)
	assert.InDelta(t, MaxWeight, cloud[0].Weight, 1e-9)
	assert.Equal(t, "Rust", cloud[1].Name)
	assert.Equal(t, 1, cloud[1].Count)
	assert.InDelta(t, 0.8+1.0/3*1.2, cloud[1].Weight, 1e-9)
}

func TestTechnologyCloudTiesKeepFirstSeen(t *testing.T) {
	ps := []model.Project{
		{Technologies: []string{"Zig", "C"}},
		{Technologies: []string{"Ada", "C"}},
	}
	cloud := TechnologyCloud(ps)
	require.Len(t, cloud, 3)
	assert.Equal(t, "C", cloud[0].Name)
	assert.Equal(t, "Zig", cloud[1].Name)
	assert.Equal(t, "Ada", cloud[2].Name)
}

func TestTechnologyCloudLimit(t *testing.T) {
	var techs []string
	for i := 0; i < 20; i++ {
		techs = append(techs, string(rune('A'+i)))
	}
	cloud := TechnologyCloud([]model.Project{{Technologies: techs}})
	assert.Len(t, cloud, CloudLimit)
	assert.Equal(t, "A", cloud[0].Name)
}

func TestTechnologyCloudEmpty(t *testing.T) {
	cloud := TechnologyCloud(nil)
	assert.NotNil(t, cloud)
	assert.Empty(t, cloud)
}

func TestComputeStats(t *testing.T) {
	s := ComputeStats(sample())
	assert.Equal(t, Stats{Total: 3, Technologies: 5, Active: 1}, s)

	assert.Equal(t, Stats{}, ComputeStats(nil))
	// case-sensitive
	s = ComputeStats([]model.Project{{Technologies: []string{"go", "Go"}}})
	assert.Equal(t, 2, s.Technologies)
}

func TestRender(t *testing.T) {
	long := strings.Repeat("ж", 120)
	ps := []model.Project{
		{
			ID: 1, Title: "A", Description: long, Category: "web", Status: "in-progress",
			Technologies: []string{"a", "b", "c", "d", "e"},
			GitHub:       "https://github.com/x/a",
			Date:         time.Date(2025, 5, 21, 14, 30, 0, 0, time.UTC),
		},
		{ID: 2, Title: "B", Description: "short", Category: "games", Status: "abandoned"},
	}

	vm := Render(ps, false, ComputeStats(ps), TechnologyCloud(ps))
	require.Len(t, vm.Cards, 2)
	assert.False(t, vm.Empty)
	assert.False(t, vm.Authorized)

	a := vm.Cards[0]
	assert.Equal(t, "fas fa-globe", a.Icon)
	assert.Equal(t, "warning", a.Badge)
	assert.Equal(t, "In progress", a.StatusLabel)
	assert.Equal(t, strings.Repeat("ж", 100)+"...", a.Excerpt)
	assert.Equal(t, []string{"a", "b", "c"}, a.Technologies)
	assert.Equal(t, 2, a.MoreTechCount)
	assert.Equal(t, "May 21, 2025", a.Date)
	assert.Equal(t, "https://github.com/x/a", a.GitHub)
	assert.False(t, a.Editable)

	b := vm.Cards[1]
	assert.Equal(t, "fas fa-code", b.Icon)
	assert.Equal(t, "secondary", b.Badge)
	assert.Equal(t, "Planned", b.StatusLabel)
	assert.Equal(t, "short", b.Excerpt)
	assert.Empty(t, b.Technologies)
	assert.Zero(t, b.MoreTechCount)

	vm = Render(ps, true, Stats{}, nil)
	assert.True(t, vm.Cards[0].Editable)
	assert.True(t, vm.Authorized)
	assert.NotNil(t, vm.Cloud)
}

func TestRenderEmpty(t *testing.T) {
	vm := Render(nil, true, Stats{}, nil)
	assert.True(t, vm.Empty)
	assert.NotNil(t, vm.Cards)
}

func TestCloudSVG(t *testing.T) {
	svg := CloudSVG([]CloudEntry{
		{Name: "C++", Count: 4, Weight: 2.0},
		{Name: "<script>", Count: 1, Weight: 0.8},
	}, nil)

	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Contains(t, svg, `font-size="32"`)
	assert.Contains(t, svg, `font-size="13"`)
	assert.Contains(t, svg, "&lt;script&gt;")
	assert.NotContains(t, svg, "<script>")
}

func TestActivityData(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)
	ps := []model.Project{
		{ID: 1, CreatedAt: time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)},
		{ID: 2, CreatedAt: time.Date(2025, 1, 10, 20, 0, 0, 0, time.UTC)},
		{ID: 3, CreatedAt: time.Date(2025, 1, 3, 12, 0, 0, 0, time.UTC)},
		{ID: 4, CreatedAt: time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC)},
		{ID: 5, Date: time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)},
	}

	data := ActivityData(ps, from, to)
	require.Len(t, data, 3)
	assert.Equal(t, 3, data[0].Date.Day())
	assert.Equal(t, 1, data[0].Count)
	assert.Equal(t, 10, data[1].Date.Day())
	assert.Equal(t, 2, data[1].Count)
	assert.Equal(t, 20, data[2].Date.Day(), "falls back to the save date")
}

func TestActivitySVG(t *testing.T) {
	now := time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC)
	r, err := model.NewDateRange("2025-01-01", "2025-01-31", now)
	require.NoError(t, err)

	svg := ActivitySVG([]model.Project{{ID: 1, CreatedAt: time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)}}, r)
	assert.Contains(t, svg, `data-date="2025-01-10" data-count="1"`)
	assert.Contains(t, svg, "Projects created")
}
