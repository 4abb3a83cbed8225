// Package collection models Postman collections as a tree of folders and
// requests, and fetches them from the Postman API.
package collection

// Node is either a *Folder or a *Request.
type Node interface {
	node()
}

// Folder is a container of child nodes. The collection root is a Folder
// carrying the collection's name and description.
type Folder struct {
	Name        string
	Description string
	Children    []Node
}

// Request is a leaf: one API call with its documentation.
type Request struct {
	Name        string
	Method      string
	URL         string
	Description string
}

func (*Folder) node()  {}
func (*Request) node() {}

// Collection is a decoded collection.
type Collection struct {
	ID     string
	Schema string
	Root   *Folder
}

// Name returns the collection name.
func (c *Collection) Name() string {
	if c.Root == nil {
		return ""
	}
	return c.Root.Name
}

// Ref identifies a collection inside a workspace.
type Ref struct {
	ID   string `json:"id"`
	UID  string `json:"uid"`
	Name string `json:"name"`
}

// Workspace lists the collections of a Postman workspace.
type Workspace struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Collections []Ref  `json:"collections"`
}

// Count returns how many documents rendering n produces: one per request plus
// one per folder with a non-empty description.
func Count(n Node) int {
	switch node := n.(type) {
	case *Request:
		return 1
	case *Folder:
		total := 0
		if node.Description != "" {
			total++
		}
		for _, child := range node.Children {
			total += Count(child)
		}
		return total
	default:
		return 0
	}
}
