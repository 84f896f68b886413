// Package typeregistry is the process-wide catalog of list type descriptors.
//
// There is exactly one Descriptor per element Kind. All descriptors are built
// eagerly when the package is initialized and are never mutated or freed
// afterwards, so lookups need no locking and two descriptors can be compared
// with ==. Graph code uses that identity to check that the list type a socket
// declares is the list type an edge actually carries.
//
// The set of kinds is closed:
//
//	Float  float32          "float_list"
//	FVec3  numeric.Vector   "fvec3_list"
//	Int32  int32            "int32_list"
//	Bool   bool             "bool_list"
package typeregistry
