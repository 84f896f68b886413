// Package literal turns list literals written in HCL or YAML files into
// shared lists. It is the producer side of the graph: a literal list is
// loaded once and then published on an edge like any computed value.
//
// HCL files declare one block per list:
//
//	list "weights" {
//	  type   = float_list
//	  values = [0.25, 0.5, 0.25]
//	}
//
// YAML files hold a `lists` sequence and an optional `data` document that
// `select` entries query with JSONPath:
//
//	lists:
//	  - name: offsets
//	    type: fvec3_list
//	    values: [[0, 0, 1], [0, 1, 0]]
//	  - name: ids
//	    type: int32
//	    select: "$.points[*].id"
//	data:
//	  points: [{id: 4}, {id: 9}]
package literal
