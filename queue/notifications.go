package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	mail "github.com/casenote/casenote/api/email"
	"github.com/hibiken/asynq"
)

const TypeAssignmentCompleted = "assignment:completed"

// AssignmentCompletedPayload notifies the staff member who handed out an
// assignment that the participant finished it.
type AssignmentCompletedPayload struct {
	Name         string
	Email        string
	SurveyName   string
	AssignmentID int64
}

func (a *AssignmentCompletedPayload) Process() (*asynq.Task, error) {
	payload, err := json.Marshal(a)

	if err != nil {
		return nil, fmt.Errorf("marshal assignment completed payload: %w", err)
	}

	return asynq.NewTask(TypeAssignmentCompleted, payload), nil
}

func (a *AssignmentCompletedPayload) ProcessorName() string {
	return a.Name
}

func HandleAssignmentCompletedTask(ctx context.Context, t *asynq.Task) error {
	var payload AssignmentCompletedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("error decoding assignment completed payload: %w", err)
	}
	log.Printf("notifying %s about completed assignment %d", payload.Email, payload.AssignmentID)

	emailData := mail.Email{
		Subject:  fmt.Sprintf("Assignment completed: %s", payload.SurveyName),
		ToAddr:   payload.Email,
		Template: "assignment_completed",
		Vars:     payload,
	}

	if err := emailData.SendTemplateEmail(); err != nil {
		err = fmt.Errorf("error sending completion notification: %w", err)
		log.Println(err)
		return err
	}

	return nil
}
