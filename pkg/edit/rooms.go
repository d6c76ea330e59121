package edit

import (
	"reflect"
	"strings"

	"github.com/matzehuels/svgmapper/pkg/errors"
	"github.com/matzehuels/svgmapper/pkg/model"
	"github.com/matzehuels/svgmapper/pkg/undo"
)

// AddRoom appends room as one transaction.
func AddRoom(doc *model.Document, h *undo.History, room *model.Room) error {
	if room.Path == nil && len(room.Points) < model.MinRoomPoints {
		return errors.New(errors.ErrCodeInvalidGeometry, "polygon must have at least %d points", model.MinRoomPoints)
	}
	rooms := doc.Rooms
	size := doc.ImageSize()
	return h.ExecuteNamed("add room "+room.Name,
		func() {
			doc.FitRoom(room, size)
			rooms.Append(room)
		},
		func() {
			rooms.Remove(room)
			size = doc.ImageSize()
		},
	)
}

// DeleteRoom removes room. Undo puts it back at the index it had.
func DeleteRoom(doc *model.Document, h *undo.History, room *model.Room) error {
	rooms := doc.Rooms
	index := rooms.IndexOf(room)
	if index < 0 {
		return errors.New(errors.ErrCodeNotFound, "room %q is not in the document", room.Name)
	}
	size := doc.ImageSize()
	return h.ExecuteNamed("delete room "+room.Name,
		func() {
			rooms.Remove(room)
			size = doc.ImageSize()
		},
		func() {
			doc.FitRoom(room, size)
			rooms.Insert(index, room)
		},
	)
}

// RenameRoom sets the room name. A blank name keeps the previous one.
func RenameRoom(doc *model.Document, h *undo.History, room *model.Room, name string) error {
	name = strings.TrimSpace(name)
	if name == "" || name == room.Name {
		return nil
	}
	if err := errors.ValidateName(name); err != nil {
		return err
	}
	old := room.Name
	rooms := doc.Rooms
	return h.ExecuteNamed("rename room "+old,
		func() {
			room.Name = name
			rooms.Notify(room)
		},
		func() {
			room.Name = old
			rooms.Notify(room)
		},
	)
}

// SetFieldNumber sets the exported field number. An empty value clears it.
func SetFieldNumber(doc *model.Document, h *undo.History, room *model.Room, field string) error {
	field = strings.TrimSpace(field)
	if field == room.FieldNumber {
		return nil
	}
	if err := errors.ValidateName(field); err != nil {
		return err
	}
	old := room.FieldNumber
	rooms := doc.Rooms
	return h.ExecuteNamed("set field number "+room.Name,
		func() {
			room.FieldNumber = field
			rooms.Notify(room)
		},
		func() {
			room.FieldNumber = old
			rooms.Notify(room)
		},
	)
}

// SetRoomStyle replaces the room's export style. Colors must be hex or
// named and the opacity must lie in [0, 1].
func SetRoomStyle(doc *model.Document, h *undo.History, room *model.Room, style model.RoomStyle) error {
	for _, c := range []string{style.Fill, style.Stroke} {
		if err := errors.ValidateColor(c); err != nil {
			return err
		}
	}
	if style.FillOpacity != nil {
		if err := errors.ValidateOpacity(*style.FillOpacity); err != nil {
			return err
		}
	}
	if reflect.DeepEqual(style, room.Style) {
		return nil
	}
	old, next := room.Style.Clone(), style.Clone()
	rooms := doc.Rooms
	return h.ExecuteNamed("style room "+room.Name,
		func() {
			room.Style = next.Clone()
			rooms.Notify(room)
		},
		func() {
			room.Style = old.Clone()
			rooms.Notify(room)
		},
	)
}
