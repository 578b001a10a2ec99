package e2e

import (
	"net/http"
	"strings"
	"testing"

	"github.com/mediassist/clinical-service/internal/assistant"
	"github.com/mediassist/clinical-service/internal/testutil"
)

// TestE2E_Consultation_FullFlow walks the complete clinical loop: signup,
// login, patient creation, an assisted consultation, and the resulting
// advice log and audit entry.
func TestE2E_Consultation_FullFlow(t *testing.T) {
	ts := SetupE2ETest(t)
	ts.ModelServer.Respond(assistant.DefaultModels[0], "Surveillance recommandée. Rien d'urgent.")

	token, _ := ts.SignupAndLogin(t, "dr.flow@mediassist.fr")
	client := ts.NewClient(token)

	patientResp := client.POST(t, "/patients", map[string]interface{}{
		"name":      "Patient E2E",
		"age":       58,
		"sex":       "M",
		"history":   "Hypertension artérielle.",
		"allergies": []string{"aspirine"},
	})
	testutil.AssertStatusCode(t, patientResp, http.StatusCreated)

	var patientResult struct {
		Patient struct {
			ID string `json:"id"`
		} `json:"patient"`
	}
	testutil.DecodeJSON(t, patientResp, &patientResult)
	patientID := patientResult.Patient.ID
	if patientID == "" {
		t.Fatal("Expected patient ID to be generated")
	}

	consultResp := client.POST(t, "/assistant/consult", map[string]interface{}{
		"patient_id": patientID,
		"query":      "Faut-il ajuster le traitement antihypertenseur ?",
	})
	testutil.AssertStatusCode(t, consultResp, http.StatusOK)

	var consultResult struct {
		Success  bool   `json:"success"`
		Response string `json:"response"`
		Urgent   bool   `json:"urgent"`
		LogID    string `json:"log_id"`
	}
	testutil.DecodeJSON(t, consultResp, &consultResult)

	if !consultResult.Success {
		t.Fatalf("Expected consultation success, got response %q", consultResult.Response)
	}
	if consultResult.Response != "Surveillance recommandée. Rien d'urgent." {
		t.Errorf("Unexpected response: %q", consultResult.Response)
	}
	if consultResult.Urgent {
		t.Error("Expected non-urgent consultation")
	}
	if consultResult.LogID == "" {
		t.Error("Expected a log id")
	}

	// The consultation must be logged on the patient record
	getResp := client.GET(t, "/patients/"+patientID)
	testutil.AssertStatusCode(t, getResp, http.StatusOK)

	var getResult struct {
		Patient struct {
			Consultations []struct {
				ID       string `json:"id"`
				Response string `json:"response"`
			} `json:"consultations"`
		} `json:"patient"`
	}
	testutil.DecodeJSON(t, getResp, &getResult)

	if len(getResult.Patient.Consultations) != 1 {
		t.Fatalf("Expected 1 logged consultation, got %d", len(getResult.Patient.Consultations))
	}
	if getResult.Patient.Consultations[0].ID != consultResult.LogID {
		t.Error("Expected the logged consultation to match the returned log id")
	}

	// The audit trail records the consultation
	auditResp := client.GET(t, "/audit")
	testutil.AssertStatusCode(t, auditResp, http.StatusOK)

	var auditResult struct {
		Entries []struct {
			Action string `json:"action"`
		} `json:"entries"`
	}
	testutil.DecodeJSON(t, auditResp, &auditResult)

	found := false
	for _, e := range auditResult.Entries {
		if e.Action == "consultation.logged" {
			found = true
		}
	}
	if !found {
		t.Error("Expected a consultation.logged audit entry")
	}

	ts.MockPublisher.AssertEventPublished(t, "practitioner.registered")
	ts.MockPublisher.AssertEventPublished(t, "patient.created")
	ts.MockPublisher.AssertEventPublished(t, "consultation.logged")
}

// TestE2E_Consultation_ModelFallback exercises the candidate list through
// the full HTTP stack: the first model fails, the second answers.
func TestE2E_Consultation_ModelFallback(t *testing.T) {
	ts := SetupE2ETest(t)
	ts.ModelServer.Fail(assistant.DefaultModels[0], http.StatusTooManyRequests)
	ts.ModelServer.Respond(assistant.DefaultModels[1], "Réponse du modèle de secours.")

	token, _ := ts.SignupAndLogin(t, "dr.fallback@mediassist.fr")
	client := ts.NewClient(token)

	patientResp := client.POST(t, "/patients", map[string]interface{}{
		"name": "Patient Fallback",
		"age":  40,
		"sex":  "F",
	})
	testutil.AssertStatusCode(t, patientResp, http.StatusCreated)

	var patientResult struct {
		Patient struct {
			ID string `json:"id"`
		} `json:"patient"`
	}
	testutil.DecodeJSON(t, patientResp, &patientResult)

	consultResp := client.POST(t, "/assistant/consult", map[string]interface{}{
		"patient_id": patientResult.Patient.ID,
		"query":      "Bilan à prévoir ?",
	})
	testutil.AssertStatusCode(t, consultResp, http.StatusOK)

	var consultResult struct {
		Success  bool   `json:"success"`
		Response string `json:"response"`
	}
	testutil.DecodeJSON(t, consultResp, &consultResult)

	if !consultResult.Success {
		t.Fatalf("Expected fallback success, got %q", consultResult.Response)
	}
	if consultResult.Response != "Réponse du modèle de secours." {
		t.Errorf("Unexpected response: %q", consultResult.Response)
	}

	attempts := ts.ModelServer.Attempts()
	if len(attempts) != 2 {
		t.Fatalf("Expected 2 model attempts, got %d: %v", len(attempts), attempts)
	}
	if attempts[0] != assistant.DefaultModels[0] || attempts[1] != assistant.DefaultModels[1] {
		t.Errorf("Expected attempts in candidate order, got %v", attempts)
	}
}

// TestE2E_Consultation_AllModelsFail verifies the user-facing failure path:
// HTTP 200, success false, and a French sentence in the response slot.
func TestE2E_Consultation_AllModelsFail(t *testing.T) {
	ts := SetupE2ETest(t)
	for _, model := range assistant.DefaultModels {
		ts.ModelServer.Fail(model, http.StatusInternalServerError)
	}

	token, _ := ts.SignupAndLogin(t, "dr.exhausted@mediassist.fr")
	client := ts.NewClient(token)

	patientResp := client.POST(t, "/patients", map[string]interface{}{
		"name": "Patient Panne",
		"age":  33,
		"sex":  "M",
	})
	testutil.AssertStatusCode(t, patientResp, http.StatusCreated)

	var patientResult struct {
		Patient struct {
			ID string `json:"id"`
		} `json:"patient"`
	}
	testutil.DecodeJSON(t, patientResp, &patientResult)

	consultResp := client.POST(t, "/assistant/consult", map[string]interface{}{
		"patient_id": patientResult.Patient.ID,
		"query":      "Question sans réponse",
	})
	testutil.AssertStatusCode(t, consultResp, http.StatusOK)

	var consultResult struct {
		Success  bool   `json:"success"`
		Response string `json:"response"`
	}
	testutil.DecodeJSON(t, consultResp, &consultResult)

	if consultResult.Success {
		t.Error("Expected success false when every model fails")
	}
	if consultResult.Response == "" {
		t.Fatal("Expected a user-facing message in the response slot")
	}
	if !strings.HasPrefix(consultResult.Response, "Désolé") {
		t.Errorf("Expected a French apology sentence, got %q", consultResult.Response)
	}

	if len(ts.ModelServer.Attempts()) != len(assistant.DefaultModels) {
		t.Errorf("Expected every candidate model to be attempted once")
	}
}
