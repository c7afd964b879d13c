package scenario

import "fmt"

// Names lists the scenario identifiers accepted by the run command, in
// execution order for "all".
var Names = []string{"content", "commits", "branches", "switchover", "workflow"}

// ByName returns the scenario for a CLI identifier.
func ByName(name, filePath string, iterations int) (Scenario, error) {
	switch name {
	case "content":
		return Content(filePath, iterations), nil
	case "commits":
		return Commits(), nil
	case "branches":
		return Branches(), nil
	case "switchover":
		return Switchover(), nil
	case "workflow":
		return Workflow(filePath), nil
	default:
		return Scenario{}, fmt.Errorf("unknown scenario %q (expected one of %v)", name, Names)
	}
}
