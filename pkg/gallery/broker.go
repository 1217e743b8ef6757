package gallery

import (
	"sync"

	"github.com/snap-party/snapparty/pkg/model"
	"golang.org/x/exp/maps"
)

func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[uint]map[uint64]chan Notification),
	}
}

// Notification is pushed to every subscriber of an event when a photo lands
// in its gallery.
type Notification struct {
	Type  string      `json:"type"`
	Photo model.Photo `json:"photo"`
}

// Broker fans photo-added notifications out to the SSE streams of an event's
// viewers. Everything is in-process; a subscriber that is too slow to drain
// its buffered channel misses the notification and picks the photo up on its
// next full pull.
type Broker struct {
	lock        sync.Mutex
	nextID      uint64
	subscribers map[uint]map[uint64]chan Notification
}

func (b *Broker) Subscribe(eventID uint) (uint64, <-chan Notification) {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.nextID++
	id := b.nextID
	channel := make(chan Notification, 1)

	if b.subscribers[eventID] == nil {
		b.subscribers[eventID] = make(map[uint64]chan Notification)
	}
	b.subscribers[eventID][id] = channel

	return id, channel
}

func (b *Broker) Unsubscribe(eventID uint, id uint64) {
	b.lock.Lock()
	defer b.lock.Unlock()

	subscribers, ok := b.subscribers[eventID]
	if !ok {
		return
	}
	if channel, ok := subscribers[id]; ok {
		close(channel)
		delete(subscribers, id)
	}
	if len(subscribers) == 0 {
		delete(b.subscribers, eventID)
	}
}

// PublishPhotoAdded notifies all subscribers of the photo's event. Slow
// subscribers are skipped rather than blocked on.
func (b *Broker) PublishPhotoAdded(photo model.Photo) {
	b.lock.Lock()
	defer b.lock.Unlock()

	for _, channel := range b.subscribers[photo.EventID] {
		select {
		case channel <- Notification{Type: "photoAdded", Photo: photo}:
		default:
		}
	}
}

// SubscribedEvents lists the events that currently have at least one viewer.
func (b *Broker) SubscribedEvents() []uint {
	b.lock.Lock()
	defer b.lock.Unlock()

	return maps.Keys(b.subscribers)
}
