/*
Package scenario loads and runs declarative scene scripts written in HCL.

A scenario file is an ordered list of command blocks mirroring the scripting
command layer:

	create_node "transform" {
	  name = "group1"
	}

	add_attr "group1" {
	  long_name     = "visibility"
	  default_value = true
	}

	ls {
	  pattern = "group*"
	  long    = true
	}

Blocks execute strictly in source order. Attribute values are held as
hcl.Expression and only evaluated when a step runs, so the file format stays
decoupled from the command layer's types.
*/
package scenario
