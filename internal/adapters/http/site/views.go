package site

import "github.com/okian/studyscore/internal/dashboard"

// resultFragment collects what the form handler shows in the result area.
type resultFragment struct {
	Visible bool
	Class   string
	Message string
}

func (f *resultFragment) Hide() { f.Visible = false }

func (f *resultFragment) ShowLoading(msg string) {
	f.Visible, f.Class, f.Message = true, "loading", msg
}

func (f *resultFragment) ShowResult(msg string, isError bool) {
	f.Visible, f.Message = true, msg
	f.Class = "success"
	if isError {
		f.Class = "error"
	}
}

// panelFragment collects what the performance panel shows.
type panelFragment struct {
	Loading string
	Cards   []dashboard.MetricCard
	Error   string
}

func (f *panelFragment) ShowLoading(msg string) { f.Loading = msg }

func (f *panelFragment) ShowCards(cards []dashboard.MetricCard) {
	f.Cards, f.Error = cards, ""
}

func (f *panelFragment) ShowError(msg string) {
	f.Cards, f.Error = nil, msg
}

var (
	_ dashboard.ResultView = (*resultFragment)(nil)
	_ dashboard.PanelView  = (*panelFragment)(nil)
)
