package parser

// NodeType represents the type of a statement node
type NodeType string

// Statement node types
const (
	NodeModule      NodeType = "Module"
	NodeStatement   NodeType = "Statement"
	NodeIf          NodeType = "If"
	NodeWhile       NodeType = "While"
	NodeDoWhile     NodeType = "DoWhile"
	NodeFor         NodeType = "For"
	NodeBreak       NodeType = "Break"
	NodeContinue    NodeType = "Continue"
	NodeReturn      NodeType = "Return"
	NodeFunctionDef NodeType = "FunctionDef"
)

// Location represents the position of a node in the source code
type Location struct {
	StartLine int
	EndLine   int
}

// Node represents one parsed statement. Compound constructs carry their
// nested statements in Body (and Orelse for the else branch of an if);
// branching constructs carry the opaque condition text in Cond. Nodes
// are not mutated after Parse returns.
type Node struct {
	Type     NodeType
	Value    string  // statement text, or the return expression
	Cond     string  // condition text for if/while/do-while/for
	Init     string  // for-loop initializer text
	Update   string  // for-loop update text
	Name     string  // function name for FunctionDef
	Body     []*Node // nested statements
	Orelse   []*Node // else branch of an if
	Location Location
}

// NewNode creates a new statement node
func NewNode(nodeType NodeType) *Node {
	return &Node{Type: nodeType}
}

// IsLoop reports whether the node is a looping construct.
func (n *Node) IsLoop() bool {
	return n.Type == NodeWhile || n.Type == NodeFor || n.Type == NodeDoWhile
}

// IsJump reports whether the node unconditionally transfers control.
func (n *Node) IsJump() bool {
	return n.Type == NodeBreak || n.Type == NodeContinue || n.Type == NodeReturn
}

// Text returns the display text for a node: the condition for branching
// constructs, the statement text otherwise.
func (n *Node) Text() string {
	switch n.Type {
	case NodeIf, NodeWhile, NodeDoWhile:
		return n.Cond
	case NodeFor:
		return n.Init + "; " + n.Cond + "; " + n.Update
	case NodeReturn:
		if n.Value == "" {
			return "return"
		}
		return "return " + n.Value
	case NodeBreak:
		return "break"
	case NodeContinue:
		return "continue"
	case NodeFunctionDef:
		return n.Name
	default:
		return n.Value
	}
}
