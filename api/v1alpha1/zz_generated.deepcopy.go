//go:build !ignore_autogenerated

/*
Copyright 2026 The Generic Autoscaler Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Code generated by hand in the style of controller-gen object:headerFile.
// Kept in sync manually with api/v1alpha1/types.go.

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	runtime "k8s.io/apimachinery/pkg/runtime"
)

// DeepCopyInto is a deepcopy function, copying the receiver, writing into out. in must be non-nil.
func (in *GeneralScaler) DeepCopyInto(out *GeneralScaler) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

// DeepCopy is a deepcopy function, copying the receiver, creating a new GeneralScaler.
func (in *GeneralScaler) DeepCopy() *GeneralScaler {
	if in == nil {
		return nil
	}
	out := new(GeneralScaler)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject is a deepcopy function, copying the receiver, creating a new runtime.Object.
func (in *GeneralScaler) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// DeepCopyInto is a deepcopy function, copying the receiver, writing into out. in must be non-nil.
func (in *GeneralScalerList) DeepCopyInto(out *GeneralScalerList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		l := make([]GeneralScaler, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&l[i])
		}
		out.Items = l
	}
}

// DeepCopy is a deepcopy function, copying the receiver, creating a new GeneralScalerList.
func (in *GeneralScalerList) DeepCopy() *GeneralScalerList {
	if in == nil {
		return nil
	}
	out := new(GeneralScalerList)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject is a deepcopy function, copying the receiver, creating a new runtime.Object.
func (in *GeneralScalerList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

// DeepCopyInto is a deepcopy function, copying the receiver, writing into out. in must be non-nil.
func (in *GeneralScalerSpec) DeepCopyInto(out *GeneralScalerSpec) {
	*out = *in
	out.TargetRef = in.TargetRef
	if in.Metrics != nil {
		l := make([]MetricSource, len(in.Metrics))
		for i := range in.Metrics {
			in.Metrics[i].DeepCopyInto(&l[i])
		}
		out.Metrics = l
	}
	in.Policy.DeepCopyInto(&out.Policy)
	out.Safety = in.Safety
}

// DeepCopy is a deepcopy function, copying the receiver, creating a new GeneralScalerSpec.
func (in *GeneralScalerSpec) DeepCopy() *GeneralScalerSpec {
	if in == nil {
		return nil
	}
	out := new(GeneralScalerSpec)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto is a deepcopy function, copying the receiver, writing into out. in must be non-nil.
func (in *MetricSource) DeepCopyInto(out *MetricSource) {
	*out = *in
	if in.Config != nil {
		m := make(map[string]string, len(in.Config))
		for k, v := range in.Config {
			m[k] = v
		}
		out.Config = m
	}
}

// DeepCopy is a deepcopy function, copying the receiver, creating a new MetricSource.
func (in *MetricSource) DeepCopy() *MetricSource {
	if in == nil {
		return nil
	}
	out := new(MetricSource)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto is a deepcopy function, copying the receiver, writing into out. in must be non-nil.
func (in *PolicySpec) DeepCopyInto(out *PolicySpec) {
	*out = *in
	if in.SLOTarget != nil {
		v := *in.SLOTarget
		out.SLOTarget = &v
	}
	if in.MaxCostPerReplica != nil {
		v := *in.MaxCostPerReplica
		out.MaxCostPerReplica = &v
	}
}

// DeepCopy is a deepcopy function, copying the receiver, creating a new PolicySpec.
func (in *PolicySpec) DeepCopy() *PolicySpec {
	if in == nil {
		return nil
	}
	out := new(PolicySpec)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto is a deepcopy function, copying the receiver, writing into out. in must be non-nil.
func (in *SafetySpec) DeepCopyInto(out *SafetySpec) {
	*out = *in
}

// DeepCopy is a deepcopy function, copying the receiver, creating a new SafetySpec.
func (in *SafetySpec) DeepCopy() *SafetySpec {
	if in == nil {
		return nil
	}
	out := new(SafetySpec)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto is a deepcopy function, copying the receiver, writing into out. in must be non-nil.
func (in *GeneralScalerStatus) DeepCopyInto(out *GeneralScalerStatus) {
	*out = *in
	if in.LastScaleTime != nil {
		v := in.LastScaleTime.DeepCopy()
		out.LastScaleTime = &v
	}
	if in.Conditions != nil {
		l := make([]metav1.Condition, len(in.Conditions))
		for i := range in.Conditions {
			in.Conditions[i].DeepCopyInto(&l[i])
		}
		out.Conditions = l
	}
}

// DeepCopy is a deepcopy function, copying the receiver, creating a new GeneralScalerStatus.
func (in *GeneralScalerStatus) DeepCopy() *GeneralScalerStatus {
	if in == nil {
		return nil
	}
	out := new(GeneralScalerStatus)
	in.DeepCopyInto(out)
	return out
}
