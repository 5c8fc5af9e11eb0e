package math

func TransformCreate() *Transform {
	t := &Transform{}
	t.SetScale(NewVec3One())
	t.Local = NewMat4Identity()
	return t
}

func (t *Transform) SetPosition(position Vec3) {
	t.Position = position
	t.IsDirty = true
}

func (t *Transform) Translate(translation Vec3) {
	t.Position = t.Position.Add(translation)
	t.IsDirty = true
}

func (t *Transform) SetRotation(rotation Vec3) {
	t.Rotation = rotation
	t.IsDirty = true
}

func (t *Transform) SetReferencePoint(reference Vec3) {
	t.ReferencePoint = reference
	t.IsDirty = true
}

func (t *Transform) SetScale(scale Vec3) {
	t.Scale = scale
	t.IsDirty = true
}

// GetLocal recomputes the local matrix only when a parameter changed.
func (t *Transform) GetLocal() Mat4 {
	if t != nil {
		if t.IsDirty {
			t.Local = NewMat4NodeLocal(t.Position, t.Rotation, t.ReferencePoint, t.Scale)
			t.IsDirty = false
		}
		return t.Local
	}
	return NewMat4Identity()
}

// GetWorld composes the local matrix with the world matrix of the parent.
func (t *Transform) GetWorld(parent Mat4) Mat4 {
	l := t.GetLocal()
	return l.Mul(parent)
}
