package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/andrescamacho/mbes-planner/internal/application/planning"
)

// maxBodyBytes bounds request bodies; a full sweep stays well below it
const maxBodyBytes = 4 << 20

type surveyPlanBody struct {
	planning.PlanRequest
	Area  planning.AreaRequest `json:"area" validate:"required"`
	Save  bool                 `json:"save"`
	Label string               `json:"label" validate:"max=200"`
}

type sweepBody struct {
	Scenarios []planning.Scenario `json:"scenarios" validate:"required,min=1"`
}

func (s *server) decode(w http.ResponseWriter, req *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Kind: kindValidation, Message: fmt.Sprintf("invalid JSON body: %v", err)})
		return false
	}
	if err := s.validator.Validate(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Kind: kindValidation, Message: err.Error()})
		return false
	}
	return true
}

func (s *server) healthz(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) catalogue(w http.ResponseWriter, req *http.Request) {
	resp, err := s.mediator.Send(req.Context(), &planning.ListCatalogueQuery{})
	if err != nil {
		writeError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) speedPlan(w http.ResponseWriter, req *http.Request) {
	var body planning.PlanRequest
	if !s.decode(w, req, &body) {
		return
	}

	resp, err := s.mediator.Send(req.Context(), &planning.CalculateSpeedPlanCommand{Request: body})
	if err != nil {
		writeError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) surveyPlan(w http.ResponseWriter, req *http.Request) {
	var body surveyPlanBody
	if !s.decode(w, req, &body) {
		return
	}
	if body.Save && !s.history {
		writeJSON(w, http.StatusBadRequest, errorBody{Kind: kindValidation, Message: "plan history is not configured"})
		return
	}

	resp, err := s.mediator.Send(req.Context(), &planning.PlanSurveyCommand{
		Request: body.PlanRequest,
		Area:    body.Area,
		Save:    body.Save,
		Label:   body.Label,
	})
	if err != nil {
		writeError(w, req, err)
		return
	}

	status := http.StatusOK
	if body.Save {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

func (s *server) sweep(w http.ResponseWriter, req *http.Request) {
	var body sweepBody
	if !s.decode(w, req, &body) {
		return
	}
	if s.maxScenarios > 0 && len(body.Scenarios) > s.maxScenarios {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Kind:    kindValidation,
			Message: fmt.Sprintf("a sweep accepts at most %d scenarios, got %d", s.maxScenarios, len(body.Scenarios)),
		})
		return
	}

	resp, err := s.mediator.Send(req.Context(), &planning.RunSweepCommand{Scenarios: body.Scenarios})
	if err != nil {
		writeError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) listPlans(w http.ResponseWriter, req *http.Request) {
	query := &planning.ListPlansQuery{}
	if raw := req.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			writeJSON(w, http.StatusBadRequest, errorBody{Kind: kindValidation, Message: "limit must be a positive integer"})
			return
		}
		query.Limit = limit
	}

	resp, err := s.mediator.Send(req.Context(), query)
	if err != nil {
		writeError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) getPlan(w http.ResponseWriter, req *http.Request) {
	resp, err := s.mediator.Send(req.Context(), &planning.GetPlanQuery{ID: mux.Vars(req)["id"]})
	if err != nil {
		writeError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
