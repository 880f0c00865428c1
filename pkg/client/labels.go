package client

import "github.com/facilityhub/maintenance-backend/pkg/enums"

// Display labels for the dashboard UI, kept in one place so every surface
// renders the same translation.
var priorityLabels = map[enums.Priority]string{
	enums.PriorityLow:    "Baixa",
	enums.PriorityMedium: "Média",
	enums.PriorityHigh:   "Alta",
}

var statusLabels = map[enums.Status]string{
	enums.StatusPending:    "Pendente",
	enums.StatusInProgress: "Em Andamento",
	enums.StatusCompleted:  "Concluída",
	enums.StatusCanceled:   "Cancelada",
}

// PriorityLabel returns the display label for a priority, falling back to the
// raw value when unknown.
func PriorityLabel(p enums.Priority) string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return string(p)
}

// StatusLabel returns the display label for a status, falling back to the raw
// value when unknown.
func StatusLabel(s enums.Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}
