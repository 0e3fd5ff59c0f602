package profile

import (
	"encoding/json"
	"strings"
	"testing"

	ds "github.com/wdm0006/datavis/pkg/dataset"
)

func sampleFrame(t *testing.T) *ds.Frame {
	t.Helper()
	age := ds.NewIntColumn("age", 0)
	age.Append(25)
	age.AppendNull()
	age.Append(35)
	city := ds.NewStringColumn("city", 0)
	city.Append("LA")
	city.Append("NY")
	city.Append("NY")
	empty := ds.NewFloatColumn("empty", 0)
	empty.AppendNull()
	empty.AppendNull()
	empty.AppendNull()
	f, err := ds.FromColumns(age, city, empty)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestReportJSON(t *testing.T) {
	rep := Of(sampleFrame(t), 1)
	if len(rep.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(rep.Columns))
	}
	age := rep.Columns[0]
	if age.Count != 2 || age.Nulls != 1 || *age.Mean != 30 || *age.Min != 25 || *age.Max != 35 {
		t.Fatalf("unexpected age profile %+v", age)
	}
	city := rep.Columns[1]
	if len(city.Top) != 1 || city.Top[0].Value != "NY" || city.Top[0].Count != 2 {
		t.Fatalf("unexpected top values %+v", city.Top)
	}
	empty := rep.Columns[2]
	if empty.Min != nil || empty.Nulls != 3 {
		t.Fatalf("unexpected empty profile %+v", empty)
	}
	if _, err := json.Marshal(rep); err != nil {
		t.Fatalf("report should encode: %v", err)
	}
}

func TestTopTiesKeepFirstSeen(t *testing.T) {
	c := ds.NewStringColumn("c", 0)
	for _, v := range []string{"b", "a", "a", "b", "c"} {
		c.Append(v)
	}
	f, _ := ds.FromColumns(c)
	col := NewCollector(f.Schema(), 0)
	col.ConsumeFrame(f)
	top := col.cols[0].Top(0)
	if top[0].Value != "b" || top[1].Value != "a" || top[2].Value != "c" {
		t.Fatalf("unexpected order %+v", top)
	}
}

func TestReportText(t *testing.T) {
	c := NewCollector(sampleFrame(t).Schema(), 2)
	c.ConsumeFrame(sampleFrame(t))
	txt := c.ReportText()
	for _, want := range []string{"Profile Summary", "- age (int): count=2 nulls=1 min=25 max=35 mean=30", `"NY": 2`} {
		if !strings.Contains(txt, want) {
			t.Fatalf("report missing %q:\n%s", want, txt)
		}
	}
}
