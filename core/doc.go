// Package core defines the conversation data model shared by every layer of
// reagent: the closed Message sum type (human, model and tool-result
// variants), the ToolCall record emitted by model clients, and the
// append-only conversation State with its explicit accumulator.
//
// Values in this package are plain data. Nothing here performs I/O or holds
// references to models, tools or stores; higher layers (graph, model, tool)
// compose these types into the agent loop.
package core
