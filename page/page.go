// Package page models the document media is spawned into: containers with
// ids, rendered sizes and children.
package page

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// DisplayNone hides an element.
const DisplayNone = "none"

// Document indexes elements by id.
type Document struct {
	mu       sync.RWMutex
	elements map[string]*Element
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{elements: make(map[string]*Element)}
}

// Add registers a top-level container with the given rendered size.
func (d *Document) Add(id string, width, height int) *Element {
	e := d.CreateElement(id)
	e.offsetWidth, e.offsetHeight = width, height
	return e
}

// CreateElement registers a detached element. An existing element with the same id is replaced.
func (d *Document) CreateElement(id string) *Element {
	e := &Element{id: id, doc: d}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements[id] = e
	return e
}

// GetElementByID finds an element that is still part of the document.
func (d *Document) GetElementByID(id string) (*Element, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.elements[id]
	return e, ok
}

// Remove drops the element and its subtree from the index and detaches it from its parent.
func (d *Document) Remove(id string) {
	e, ok := d.GetElementByID(id)
	if !ok {
		return
	}

	if parent := e.Parent(); parent != nil {
		parent.RemoveChild(e)
	}
	d.forget(e)
}

func (d *Document) forget(e *Element) {
	for _, child := range e.Children() {
		d.forget(child)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.elements[e.id] == e {
		delete(d.elements, e.id)
	}
}

// IDs returns every element id, sorted.
func (d *Document) IDs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ids := make([]string, 0, len(d.elements))
	for id := range d.elements {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GUID returns prefix followed by a random unique suffix.
func GUID(prefix string) string {
	return prefix + uuid.NewString()
}

// Element is a node of the document.
type Element struct {
	mu           sync.RWMutex
	id           string
	doc          *Document
	text         string
	display      string
	offsetWidth  int
	offsetHeight int
	parent       *Element
	children     []*Element
}

// ID returns the element id.
func (e *Element) ID() string {
	return e.id
}

// Text returns the text content.
func (e *Element) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text
}

// SetText replaces the text content.
func (e *Element) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = text
}

// Display returns the display style, "" or DisplayNone.
func (e *Element) Display() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.display
}

// SetDisplay sets the display style.
func (e *Element) SetDisplay(display string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.display = display
}

// Hidden reports whether display is none.
func (e *Element) Hidden() bool {
	return e.Display() == DisplayNone
}

// OffsetWidth is the rendered width.
func (e *Element) OffsetWidth() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.offsetWidth
}

// OffsetHeight is the rendered height.
func (e *Element) OffsetHeight() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.offsetHeight
}

// SetOffset changes the rendered size.
func (e *Element) SetOffset(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.offsetWidth, e.offsetHeight = width, height
}

// Parent returns the parent element, nil when detached.
func (e *Element) Parent() *Element {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.parent
}

// AppendChild moves child under e.
func (e *Element) AppendChild(child *Element) {
	if old := child.Parent(); old != nil {
		old.RemoveChild(child)
	}

	e.mu.Lock()
	e.children = append(e.children, child)
	e.mu.Unlock()

	child.mu.Lock()
	child.parent = e
	child.mu.Unlock()
}

// RemoveChild detaches child. It reports false when child was not a direct child of e.
func (e *Element) RemoveChild(child *Element) bool {
	e.mu.Lock()
	idx := -1
	for i, c := range e.children {
		if c == child {
			idx = i
			break
		}
	}
	if idx >= 0 {
		e.children = append(e.children[:idx], e.children[idx+1:]...)
	}
	e.mu.Unlock()

	if idx < 0 {
		return false
	}

	child.mu.Lock()
	child.parent = nil
	child.mu.Unlock()
	return true
}

// Children returns a copy of the direct children.
func (e *Element) Children() []*Element {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]*Element(nil), e.children...)
}

// Contains reports whether child is a direct child of e.
func (e *Element) Contains(child *Element) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, c := range e.children {
		if c == child {
			return true
		}
	}
	return false
}
