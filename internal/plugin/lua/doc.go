// Package lua runs user highlighters written in Lua.
//
// A script defines a global function highlight(text) that returns a list of
// {start, stop, class} triples. Positions are 1-based and inclusive byte
// offsets, the same convention string.find uses:
//
//	function highlight(text)
//	  local spans = {}
//	  for s, e in text:gmatch("()%d+()") do
//	    spans[#spans + 1] = {s, e - 1, "m"}
//	  end
//	  return spans
//	end
//
// # Sandbox
//
// Scripts get the base, table, string and math libraries. The io, os,
// debug and package libraries are not opened, and dofile, loadfile, load,
// loadstring and require are removed. Every call runs under a deadline.
//
// # Thread Safety
//
// gopher-lua states are single-threaded. State serializes access with a
// mutex.
package lua
