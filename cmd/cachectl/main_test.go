package main

import "testing"

func TestNewRootCmd_CommandsRegistered(t *testing.T) {
	root := newRootCmd()

	want := map[string]bool{
		"stats": false,
		"get":   false,
		"set":   false,
		"del":   false,
		"clear": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestSetCmd_TTLFlag(t *testing.T) {
	root := newRootCmd()

	for _, cmd := range root.Commands() {
		if cmd.Name() != "set" {
			continue
		}
		if cmd.Flags().Lookup("ttl") == nil {
			t.Error("set command missing --ttl flag")
		}
		return
	}
	t.Fatal("set command not found")
}
