// Copyright 2026 Arkestra Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package tables normalizes extracted report tables into long-format
// financial facts.
//
// Each table goes through grid reconstruction (span fill, empty row and
// column pruning, multi-row header merge), statement classification by
// header text, and finally row-by-row conversion where every data cell
// becomes one FactRow keyed by metric and fiscal year. Facts are grouped
// per year and written as CSV artifacts.
package tables
