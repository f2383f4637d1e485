package engine

import (
	"fmt"
	"strings"
)

// ExposurePath is a chain of connections from a risky tool to a foundation model
type ExposurePath struct {
	From  string   `json:"from" yaml:"from"`
	To    string   `json:"to" yaml:"to"`
	Steps []string `json:"steps" yaml:"steps"`
}

// TraceExposure finds, for every risky tool, the shortest connection path to
// each layer-1 tool it can reach. Paths are ordered by inventory order of the
// source, then of the target.
func TraceExposure(tools []Tool, connections []Connection) []ExposurePath {
	adjacency := make(map[string][]string)
	for _, c := range connections {
		adjacency[c.A] = append(adjacency[c.A], c.B)
		adjacency[c.B] = append(adjacency[c.B], c.A)
	}

	var paths []ExposurePath
	for _, src := range tools {
		if !src.Risky {
			continue
		}
		for _, dst := range tools {
			if dst.Layer != 1 || dst.ID == src.ID {
				continue
			}
			if steps := shortestPath(adjacency, src.ID, dst.ID); steps != nil {
				paths = append(paths, ExposurePath{From: src.ID, To: dst.ID, Steps: steps})
			}
		}
	}
	return paths
}

func shortestPath(adjacency map[string][]string, start, end string) []string {
	queue := [][]string{{start}}
	visited := map[string]bool{start: true}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		node := path[len(path)-1]
		if node == end {
			return path
		}

		for _, next := range adjacency[node] {
			if visited[next] {
				continue
			}
			visited[next] = true
			newPath := make([]string, len(path), len(path)+1)
			copy(newPath, path)
			queue = append(queue, append(newPath, next))
		}
	}
	return nil
}

// Story renders the path as a short narrative using tool names
func (p ExposurePath) Story(names map[string]string) string {
	label := func(id string) string {
		if n, ok := names[id]; ok && n != "" {
			return n
		}
		return id
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Shadow AI tool %s reaches foundation model %s", label(p.From), label(p.To)))
	if len(p.Steps) > 2 {
		hops := make([]string, 0, len(p.Steps)-2)
		for _, id := range p.Steps[1 : len(p.Steps)-1] {
			hops = append(hops, label(id))
		}
		sb.WriteString(" via " + strings.Join(hops, " -> "))
	}
	return sb.String()
}
