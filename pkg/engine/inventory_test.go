package engine

import "testing"

func TestInventoryConnections(t *testing.T) {
	var inv Inventory
	inv.AddTool(Tool{ID: "a", Name: "A", Layer: 1})
	inv.AddTool(Tool{ID: "b", Name: "B", Layer: 3})
	inv.AddTool(Tool{ID: "c", Name: "C", Layer: 7})

	if inv.AddTool(Tool{ID: "a", Name: "Again"}) {
		t.Error("Duplicate tool id should be rejected")
	}

	if !inv.AddConnection("a", "b") {
		t.Fatal("Expected connection a-b to be added")
	}
	if inv.AddConnection("b", "a") {
		t.Error("Reversed duplicate pair should be ignored")
	}
	if inv.AddConnection("a", "a") {
		t.Error("Self connection should be ignored")
	}
	if inv.AddConnection("a", "missing") {
		t.Error("Connection to unknown tool should be ignored")
	}
	inv.AddConnection("b", "c")

	if inv.ConnectionCount() != 2 {
		t.Fatalf("Expected 2 connections, got %d", inv.ConnectionCount())
	}

	// Removing a tool drops its connections
	inv.RemoveTool("b")
	if inv.ConnectionCount() != 0 {
		t.Errorf("Expected connections of b to be removed, got %d", inv.ConnectionCount())
	}
	if inv.ToolCount() != 2 {
		t.Errorf("Expected 2 tools, got %d", inv.ToolCount())
	}
}

func TestInventoryRemoveConnectionEitherOrder(t *testing.T) {
	var inv Inventory
	inv.AddTool(Tool{ID: "a"})
	inv.AddTool(Tool{ID: "b"})
	inv.AddConnection("a", "b")

	if !inv.RemoveConnection("b", "a") {
		t.Fatal("Expected reversed pair to be removed")
	}
	if inv.RemoveConnection("a", "b") {
		t.Error("Connection already removed")
	}
}

func TestInventoryCopiesArePrivate(t *testing.T) {
	var inv Inventory
	inv.AddTool(Tool{ID: "a", Position: &Position{X: 1, Y: 2}})

	tools := inv.Tools()
	tools[0].Position.X = 100
	tools[0].Name = "mutated"

	got, _ := inv.Tool("a")
	if got.Position.X != 1 || got.Name != "" {
		t.Errorf("Inventory was mutated through a copy: %+v", got)
	}

	inv.MoveTool("a", Position{X: 5, Y: 6})
	got, _ = inv.Tool("a")
	if got.Position.X != 5 || got.Position.Y != 6 {
		t.Errorf("Expected moved position, got %+v", got.Position)
	}
}

func TestRiskLogDeduplicates(t *testing.T) {
	var log RiskLog
	if !log.Add(Risk{ID: "r1", Description: "Shadow AI Tool Detected: X", Severity: SeverityHigh}) {
		t.Fatal("Expected first entry to be added")
	}
	if log.Add(Risk{ID: "r2", Description: "Shadow AI Tool Detected: X"}) {
		t.Error("Duplicate description should be ignored")
	}
	log.Add(Risk{ID: "r3", Description: "Unclear data retention", Severity: "bogus"})

	if log.Len() != 2 {
		t.Fatalf("Expected 2 entries, got %d", log.Len())
	}
	if log.Entries()[1].Severity != SeverityMedium {
		t.Errorf("Unknown severity should default to medium, got %s", log.Entries()[1].Severity)
	}
}
