package domain

type Role string

const (
	RoleCustomer Role = "customer"
	RoleWorker   Role = "worker"
	RoleAdmin    Role = "admin"
)

// Actor is the capability descriptor produced by the role gate. Location is
// set only for workers; a customer's location is a client-supplied request
// parameter, never part of the identity.
type Actor struct {
	Role     Role
	Location Location
}

func Customer() Actor {
	return Actor{Role: RoleCustomer}
}

func Admin() Actor {
	return Actor{Role: RoleAdmin}
}

func Worker(loc Location) Actor {
	return Actor{Role: RoleWorker, Location: loc}
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) IsWorker() bool {
	return a.Role == RoleWorker
}
