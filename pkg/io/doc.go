// Package io provides JSON import and export for road network snapshots.
//
// # Overview
//
// A snapshot stores a fully built graph, including the attributes that the CSV
// tables do not carry (lane counts, road geometry, edge IDs). It is used to:
//
//   - Cache imported CSV networks so that re-rendering skips parsing
//   - Exchange networks with tools that produce lanes or geometry
//   - Round-trip a network: import, filter, export, and re-import identically
//
// # JSON Format
//
//	{
//	  "version": 1,
//	  "vertices": [
//	    {"id": 10, "lat": 48.77, "lng": 9.18},
//	    {"id": 11, "lat": 48.78, "lng": 9.19}
//	  ],
//	  "edges": [
//	    {"tail": 0, "head": 1, "id": 0, "length": 1000, "capacity": 100,
//	     "speed": 50, "travel_time": 720, "lanes": 2,
//	     "geometry": [{"lat": 48.775, "lng": 9.185}]}
//	  ]
//	}
//
// Vertices are listed in internal ID order and edges reference them by
// position. Optional edge fields:
//   - id: dense edge ID (defaults to -1, unassigned)
//   - lanes: number of lanes (defaults to 1)
//   - geometry: intermediate points between tail and head
//
// # Reading
//
// [NewJSONImporter] exposes a snapshot through the graph.Importer protocol, so
// it is built with the same graph.Build routine as the CSV tables. Attributes
// the snapshot does not store, such as the raw source coordinate, resolve to
// their defaults.
package io
