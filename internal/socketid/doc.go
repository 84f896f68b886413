/*
Package socketid identifies one end of a graph edge: a socket on a node.

The canonical form is `node.socket`, optionally followed by an index for
multi-input sockets, e.g. `mix.inputs[2]`. Node and socket names may contain
letters, digits, `_` and `-`.
*/
package socketid
