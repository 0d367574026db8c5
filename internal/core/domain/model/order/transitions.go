package order

// Action is what an actor asks the state machine to do.
type Action int

const (
	UnknownAction Action = iota
	Accept
	Reject
	Resubmit
	// SystemTransition is recorded for moves made by the engine itself, such as intake.
	SystemTransition
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		UnknownAction:    "unknown",
		Accept:           "accept",
		Reject:           "reject",
		Resubmit:         "resubmit",
		SystemTransition: "system_transition",
	}
}

func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "unknown"
}

// ParseAction converts the persisted representation of an action.
func ParseAction(s string) (Action, bool) {
	for action, str := range getActionStrings() {
		if action != UnknownAction && str == s {
			return action, true
		}
	}
	return UnknownAction, false
}

// Party identifies which assignment of the order is responsible for a stage.
type Party int

const (
	NoParty Party = iota
	SalesParty
	OperationParty
	ManagerParty
	ClientParty
)

func (p Party) String() string {
	switch p {
	case SalesParty:
		return "sales"
	case OperationParty:
		return "operation"
	case ManagerParty:
		return "manager"
	case ClientParty:
		return "client"
	default:
		return "none"
	}
}

// ParseParty accepts the assignable parties by name.
func ParseParty(s string) (Party, bool) {
	for _, p := range []Party{SalesParty, OperationParty, ManagerParty} {
		if p.String() == s {
			return p, true
		}
	}
	return NoParty, false
}

// ClientActorID is the actor id the client acts under.
const ClientActorID = "client"

// stageRule lists who owns a status and where each permitted action leads.
// A zero target means the action is not permitted from that status.
type stageRule struct {
	party    Party
	accept   Status
	reject   Status
	resubmit Status
}

var stageRules = map[Status]stageRule{
	PendingSalesReview:            {party: SalesParty, accept: PendingOperation, reject: RejectedBySales},
	PendingOperation:              {party: OperationParty, accept: PendingOperationManagerReview, reject: RejectedByOperation},
	PendingOperationManagerReview: {party: ManagerParty, accept: AwaitingClientAcceptance, reject: PendingOperation},
	AwaitingClientAcceptance:      {party: ClientParty, accept: ShippingPreparation, reject: PendingOperationManagerReview},
	ShippingPreparation:           {party: OperationParty, accept: Completed},
	RejectedBySales:               {party: SalesParty, resubmit: PendingSalesReview},
	RejectedByOperation:           {party: SalesParty, resubmit: PendingSalesReview},
	RejectedByOperationManager:    {party: SalesParty, resubmit: PendingSalesReview},
	RejectedByClient:              {party: SalesParty, resubmit: PendingSalesReview},
}

// rejectionBlame maps the rejecting stage to the party whose work was rejected.
var rejectionBlame = map[Status]Party{
	PendingOperation:              SalesParty,
	PendingOperationManagerReview: OperationParty,
	AwaitingClientAcceptance:      ManagerParty,
}

// Next returns the target status and the responsible party for action taken from.
// ok is false when the action is not permitted from that status.
func Next(from Status, action Action) (to Status, party Party, ok bool) {
	rule, found := stageRules[from]
	if !found {
		return Unknown, NoParty, false
	}

	switch action {
	case Accept:
		to = rule.accept
	case Reject:
		to = rule.reject
	case Resubmit:
		to = rule.resubmit
	default:
		return Unknown, NoParty, false
	}

	if to == Unknown {
		return Unknown, NoParty, false
	}
	return to, rule.party, true
}

// ResponsibleParty returns the owner of a status, NoParty when nobody acts on it.
func ResponsibleParty(s Status) Party {
	return stageRules[s].party
}

// IsRework reports whether rejecting from s sends the order back a stage
// instead of stopping the flow.
func IsRework(s Status) bool {
	to, _, ok := Next(s, Reject)
	return ok && !to.IsRejected()
}
