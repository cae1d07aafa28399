package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultImageURL is stored when an event is created without an image.
const DefaultImageURL = "/default-event.jpg"

// EventFields are the client-controlled fields of an event. An update
// replaces all of them at once.
type EventFields struct {
	Title            string     `bson:"title" json:"title"`
	ShortDescription string     `bson:"shortDescription" json:"shortDescription"`
	FullDescription  string     `bson:"fullDescription" json:"fullDescription"`
	Price            *float64   `bson:"price" json:"price"`
	Date             *time.Time `bson:"date" json:"date"`
	Category         string     `bson:"category" json:"category"`
	Location         string     `bson:"location" json:"location"`
	ImageURL         *string    `bson:"imageUrl" json:"imageUrl"`
	Organizer        string     `bson:"organizer" json:"organizer"`
}

// Event is a document in the events collection
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	EventFields `bson:",inline"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
