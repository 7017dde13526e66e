package mockflow

import (
	"fmt"

	"github.com/google/uuid"
)

func sessionPath(agentName string) string {
	return fmt.Sprintf("projects/%s/agent/sessions/%s", agentName, uuid.New().String())
}

func intentPath(agentName string) string {
	return fmt.Sprintf("projects/%s/agent/intents/%s", agentName, uuid.New().String())
}

func contextPath(session, name string) string {
	return fmt.Sprintf("%s/contexts/%s", session, name)
}
