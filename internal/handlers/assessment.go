// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"pocsclinic/internal/assessment"
	"pocsclinic/internal/i18n"
	"pocsclinic/internal/metrics"
	"pocsclinic/internal/models"
	"pocsclinic/internal/render"
)

// Assessment serves the self-assessment wizard as plain HTML forms. Nothing
// is stored server-side: the answers given so far travel in a hidden field
// and the wizard is rebuilt from them on every step.
type Assessment struct {
	renderer *render.Renderer
	table    *i18n.Table
}

// NewAssessment creates the wizard handler group.
func NewAssessment(renderer *render.Renderer, table *i18n.Table) *Assessment {
	if table == nil {
		table = i18n.Default()
	}
	return &Assessment{renderer: renderer, table: table}
}

// Show renders the first question.
func (a *Assessment) Show(w http.ResponseWriter, r *http.Request) {
	a.page(w, r, http.StatusOK, assessment.NewWizard(), "")
}

// Step applies one form action: answer (default), back, submit or restart.
func (a *Assessment) Step(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.page(w, r, http.StatusBadRequest, assessment.NewWizard(), err.Error())
		return
	}

	answers, err := parseAnswers(r.PostFormValue("answers"))
	if err != nil {
		a.page(w, r, http.StatusBadRequest, assessment.NewWizard(), err.Error())
		return
	}
	wiz, err := assessment.Replay(answers)
	if err != nil {
		a.page(w, r, http.StatusBadRequest, assessment.NewWizard(), err.Error())
		return
	}

	switch r.PostFormValue("action") {
	case "restart":
		wiz.Reset()
	case "back":
		wiz.Back()
	case "submit":
		verdict, err := wiz.Submit()
		if err != nil {
			a.page(w, r, http.StatusConflict, wiz, err.Error())
			return
		}
		metrics.AssessmentVerdicts.WithLabelValues(string(verdict)).Inc()
	default:
		option, err := strconv.Atoi(r.PostFormValue("option"))
		if err != nil {
			a.page(w, r, http.StatusBadRequest, wiz, "missing option")
			return
		}
		if err := wiz.Answer(option); err != nil {
			a.page(w, r, http.StatusBadRequest, wiz, err.Error())
			return
		}
	}

	a.page(w, r, http.StatusOK, wiz, "")
}

func (a *Assessment) page(w http.ResponseWriter, r *http.Request, status int, wiz *assessment.Wizard, errMsg string) {
	lang := language(r)
	data := wizardView(wiz, a.table, lang)
	data["Error"] = errMsg

	a.renderer.Page(w, r, status, "assessment", &render.PageData{
		Title: a.table.T(lang, "assessment.title"),
		Lang:  lang,
		Path:  "/assessment",
		Data:  data,
	})
}

// wizardView flattens the wizard into template data. While a question is
// open only the answers before it are carried forward, and the option
// chosen earlier for it (after going back) is highlighted.
func wizardView(wiz *assessment.Wizard, table *i18n.Table, lang models.Language) map[string]any {
	questions := table.Questions(lang)
	given := wiz.Answers()
	current := wiz.Current()

	carried := given
	selected := -1
	if wiz.State() == assessment.StateInProgress && len(given) > current {
		carried = given[:current]
		selected = given[current]
	}

	data := map[string]any{
		"State":    wiz.State().String(),
		"Index":    current,
		"Total":    assessment.QuestionCount,
		"Progress": wiz.Progress(),
		"Answers":  formatAnswers(carried),
		"Selected": selected,
	}
	if current < len(questions) {
		data["Question"] = questions[current]
	}
	if v := wiz.Verdict(); v != "" {
		data["Verdict"] = string(v)
		data["Message"] = v.Message(table, lang)
	}
	return data
}
