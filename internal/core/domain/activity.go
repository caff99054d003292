package domain

import "time"

// Activity is a single entry of the administrative audit trail.
type Activity struct {
	ActorID    string    `json:"actorId" bson:"actor_id"`
	Action     string    `json:"action" bson:"action"`
	Resource   string    `json:"resource" bson:"resource"`
	ResourceID string    `json:"resourceId,omitempty" bson:"resource_id,omitempty"`
	Detail     string    `json:"detail,omitempty" bson:"detail,omitempty"`
	At         time.Time `json:"at" bson:"at"`
}
