package order

// Status is the finite order status set used by the upstream CRM
type Status string

const (
	StatusPendiente  Status = "pendiente"
	StatusConfirmado Status = "confirmado"
	StatusEnProceso  Status = "en_proceso"
	StatusEnviado    Status = "enviado"
	StatusEntregado  Status = "entregado"
	StatusCancelado  Status = "cancelado"
)

// Display is the presentation mapping of a status
type Display struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

var displayByStatus = map[Status]Display{
	StatusPendiente:  {Label: "Pendiente", Icon: "clock"},
	StatusConfirmado: {Label: "Confirmado", Icon: "check-circle"},
	StatusEnProceso:  {Label: "En proceso", Icon: "package"},
	StatusEnviado:    {Label: "Enviado", Icon: "truck"},
	StatusEntregado:  {Label: "Entregado", Icon: "home"},
	StatusCancelado:  {Label: "Cancelado", Icon: "x-circle"},
}

// DisplayFor maps a status to its label and icon. Unrecognized statuses are
// passed through verbatim as their own label with a neutral icon, never
// rejected.
func DisplayFor(s Status) Display {
	if d, ok := displayByStatus[s]; ok {
		return d
	}
	return Display{Label: string(s), Icon: "help-circle"}
}

// IsKnown reports whether the status belongs to the finite upstream set
func (s Status) IsKnown() bool {
	_, ok := displayByStatus[s]
	return ok
}
